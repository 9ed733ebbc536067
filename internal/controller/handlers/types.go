package handlers

import (
	"github.com/lidiya-fiker/unity-bot/internal/controller/callbacks/callbacktypes"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	cb     *callbacktypes.Handler
	logger *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(cb *callbacktypes.Handler) *Handlers {
	return &Handlers{
		cb:     cb,
		logger: cb.Logger,
	}
}
