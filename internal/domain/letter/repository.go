package letter

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindByIdentity(ctx context.Context, adler32, filename string) (*PendingFile, error)
	Create(ctx context.Context, p *PendingFile) error
	Save(ctx context.Context, p *PendingFile) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*PendingFile, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindByIdentity returns the first record matching the pair. Duplicate rows
// are possible in old databases; first match wins.
func (r *repository) FindByIdentity(ctx context.Context, adler32, filename string) (*PendingFile, error) {
	var p PendingFile
	err := r.db.WithContext(ctx).
		Where("adler32 = ? AND filename = ?", adler32, filename).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *PendingFile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Save(ctx context.Context, p *PendingFile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&PendingFile{}).Error
}

func (r *repository) List(ctx context.Context) ([]*PendingFile, error) {
	var files []*PendingFile
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&files).Error
	return files, err
}
