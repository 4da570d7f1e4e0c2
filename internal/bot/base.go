// Package bot holds the built-in decision strategies.
package bot

import "DurakEngine/internal/game/engine"

// Base 提供空的 reset 回调，供无状态策略嵌入
type Base struct{}

func (Base) ResetForGame(*engine.Snapshot)  {}
func (Base) ResetForTrick(*engine.Snapshot) {}
