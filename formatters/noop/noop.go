package noop

import (
	"context"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/boostsecurityio/dependafetch/results"
)

type Format struct {
}

func (f *Format) Format(ctx context.Context, report *results.Report) error {
	return nil
}

func (f *Format) FormatRepos(ctx context.Context, owner string, repos []models.Repository) error {
	return nil
}

func (f *Format) FormatRepoError(ctx context.Context, owner string, statusCode int, body string) error {
	return nil
}
