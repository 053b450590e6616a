package usecase

import (
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
)

// UseCases wires the engine's operations to their collaborators. Repository
// and blob store are mandatory; publisher, notifier, and directory are
// optional and skipped when absent.
type UseCases struct {
	repo      interfaces.Repository
	blob      interfaces.BlobStore
	publisher interfaces.Publisher
	notifier  interfaces.Notifier
	directory interfaces.Directory

	Case *CaseUseCase
}

type Option func(*UseCases)

func WithPublisher(p interfaces.Publisher) Option {
	return func(uc *UseCases) {
		uc.publisher = p
	}
}

func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

func WithDirectory(d interfaces.Directory) Option {
	return func(uc *UseCases) {
		uc.directory = d
	}
}

func New(repo interfaces.Repository, blob interfaces.BlobStore, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		blob: blob,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = &CaseUseCase{
		repo:      repo,
		blob:      blob,
		publisher: uc.publisher,
		notifier:  uc.notifier,
		directory: uc.directory,
	}

	return uc
}
