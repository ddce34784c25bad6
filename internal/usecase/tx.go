package usecase

import "github.com/riskibarqy/soccer-academy/internal/domain/storage"

type (
	Repositories = storage.Repositories
	TxManager    = storage.TxManager
)
