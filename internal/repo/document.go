package repo

import (
	"context"
	"database/sql"

	"github.com/guardsys/guardsys/internal/models"
)

// DocumentRepo persists attachment descriptors. Byte storage is external;
// only the descriptor row lives here. original_name is unique per asset.
type DocumentRepo struct {
	DB *sql.DB
}

// NewDocumentRepo returns a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db}
}

// Create inserts a descriptor. A duplicate filename on the same asset yields
// ErrDuplicateName and commits nothing.
func (r *DocumentRepo) Create(ctx context.Context, d *models.Document) (*models.Document, error) {
	created := &models.Document{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO documents (asset_id, original_name, content_type, size_bytes, storage_path)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, asset_id, original_name, COALESCE(content_type,''), size_bytes, storage_path, uploaded_at`,
		d.AssetID, d.OriginalName, d.ContentType, d.SizeBytes, d.StoragePath,
	).Scan(&created.ID, &created.AssetID, &created.OriginalName,
		&created.ContentType, &created.SizeBytes, &created.StoragePath, &created.UploadedAt)
	if err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// ListByAsset returns the asset's attachment descriptors, newest upload first.
func (r *DocumentRepo) ListByAsset(ctx context.Context, assetID int) ([]models.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, asset_id, original_name, COALESCE(content_type,''), size_bytes, storage_path, uploaded_at
		 FROM documents
		 WHERE asset_id = $1
		 ORDER BY uploaded_at DESC`,
		assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.AssetID, &d.OriginalName,
			&d.ContentType, &d.SizeBytes, &d.StoragePath, &d.UploadedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
