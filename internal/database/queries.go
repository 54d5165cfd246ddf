package database

import (
	"context"
	"fmt"
	"time"
)

// InsertImage inserts a new image record and returns the assigned id.
func (d *Database) InsertImage(ctx context.Context, img *Image) (int64, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("insert_image", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx,
		`INSERT INTO images (author, width, height, hash, path, mime_type) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Author, img.Width, img.Height, img.Hash, img.Path, img.MimeType,
	)
	if err != nil {
		return 0, fmt.Errorf("insert image: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListImages returns up to limit records ordered by id, offset by page*limit.
// Page is 0-based; callers are responsible for clamping limit.
func (d *Database) ListImages(ctx context.Context, page, limit int) ([]Image, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_images", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx,
		`SELECT id, author, width, height, hash, path, mime_type
		 FROM images ORDER BY id LIMIT ? OFFSET ?`,
		limit, page*limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]Image, 0, limit)
	for rows.Next() {
		var img Image
		if err = rows.Scan(&img.ID, &img.Author, &img.Width, &img.Height,
			&img.Hash, &img.Path, &img.MimeType); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}
	return images, nil
}

// CountImages returns the total number of persisted image records.
func (d *Database) CountImages(ctx context.Context) (int, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_images", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	err = d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}
