package archive

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Append(ctx context.Context, a *ArchivedFile) error
	List(ctx context.Context) ([]*ArchivedFile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, a *ArchivedFile) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// List returns the archive with the most recent mailing first.
func (r *repository) List(ctx context.Context) ([]*ArchivedFile, error) {
	var files []*ArchivedFile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&files).Error
	return files, err
}
