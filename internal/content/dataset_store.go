package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sabq-ai/app-template-recommender/internal/models"
	_ "modernc.org/sqlite"
)

// DatasetStore persiste datasets do playground em SQLite
type DatasetStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenDatasetStore abre (ou cria) o banco e aplica o schema
func OpenDatasetStore(path string) (*DatasetStore, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório de datasets: %w", err)
		}
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco de datasets: %w", err)
	}
	// SQLite aceita um único escritor
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar banco de datasets: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("erro ao habilitar WAL: %w", err)
		}
	}

	s := &DatasetStore{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *DatasetStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		name TEXT PRIMARY KEY,
		description TEXT NOT NULL DEFAULT '',
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS dataset_items (
		dataset TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		excerpt TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL DEFAULT '',
		news_type TEXT NOT NULL DEFAULT '',
		published_at INTEGER NOT NULL DEFAULT 0,
		views INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (dataset, position)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("erro ao criar schema de datasets: %w", err)
	}
	return nil
}

// Close fecha o banco
func (s *DatasetStore) Close() error {
	return s.db.Close()
}

// Ping verifica a conexão
func (s *DatasetStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveDataset cria ou substitui um dataset inteiro
func (s *DatasetStore) SaveDataset(ctx context.Context, ds models.Dataset) (models.Dataset, error) {
	ds.Name = strings.TrimSpace(ds.Name)
	if ds.Name == "" {
		return models.Dataset{}, &models.ValidationError{Field: "name", Reason: "obrigatório"}
	}
	for i, it := range ds.Items {
		if strings.TrimSpace(it.ID) == "" {
			return models.Dataset{}, &models.ValidationError{Field: fmt.Sprintf("items[%d].id", i), Reason: "obrigatório"}
		}
	}

	ds.UpdatedAt = s.now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Dataset{}, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO datasets (name, description, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET description = excluded.description, updated_at = excluded.updated_at
	`, ds.Name, ds.Description, ds.UpdatedAt.Unix()); err != nil {
		return models.Dataset{}, fmt.Errorf("erro ao salvar dataset: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_items WHERE dataset = ?`, ds.Name); err != nil {
		return models.Dataset{}, fmt.Errorf("erro ao limpar itens do dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dataset_items (
			dataset, position, id, title, excerpt, image_url, video_url,
			category_id, news_type, published_at, views, comments
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return models.Dataset{}, err
	}
	defer stmt.Close()

	for i, it := range ds.Items {
		var published int64
		if !it.PublishedAt.IsZero() {
			published = it.PublishedAt.Unix()
		}
		if _, err := stmt.ExecContext(ctx,
			ds.Name, i, it.ID, it.Title, it.Excerpt, it.ImageURL, it.VideoURL,
			it.CategoryID, string(it.NewsType), published, it.Views, it.Comments,
		); err != nil {
			return models.Dataset{}, fmt.Errorf("erro ao salvar item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

// ListDatasets lista os datasets por nome
func (s *DatasetStore) ListDatasets(ctx context.Context) ([]models.DatasetSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.description, d.updated_at, COUNT(i.id)
		FROM datasets d
		LEFT JOIN dataset_items i ON i.dataset = d.name
		GROUP BY d.name
		ORDER BY d.name
	`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar datasets: %w", err)
	}
	defer rows.Close()

	out := []models.DatasetSummary{}
	for rows.Next() {
		var (
			sum     models.DatasetSummary
			updated int64
		)
		if err := rows.Scan(&sum.Name, &sum.Description, &updated, &sum.ItemCount); err != nil {
			return nil, err
		}
		sum.UpdatedAt = time.Unix(updated, 0).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetDataset carrega um dataset com os itens na ordem salva
func (s *DatasetStore) GetDataset(ctx context.Context, name string) (models.Dataset, error) {
	var (
		ds      models.Dataset
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, description, updated_at FROM datasets WHERE name = ?`, name,
	).Scan(&ds.Name, &ds.Description, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Dataset{}, fmt.Errorf("%w: %s", models.ErrDatasetNotFound, name)
	}
	if err != nil {
		return models.Dataset{}, fmt.Errorf("erro ao buscar dataset: %w", err)
	}
	ds.UpdatedAt = time.Unix(updated, 0).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, excerpt, image_url, video_url, category_id, news_type, published_at, views, comments
		FROM dataset_items WHERE dataset = ? ORDER BY position
	`, name)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("erro ao buscar itens do dataset: %w", err)
	}
	defer rows.Close()

	ds.Items = []models.ContentItem{}
	for rows.Next() {
		var (
			it        models.ContentItem
			newsType  string
			published int64
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.Excerpt, &it.ImageURL, &it.VideoURL,
			&it.CategoryID, &newsType, &published, &it.Views, &it.Comments); err != nil {
			return models.Dataset{}, err
		}
		it.NewsType = models.NewsType(newsType)
		if published > 0 {
			it.PublishedAt = time.Unix(published, 0).UTC()
		}
		ds.Items = append(ds.Items, it)
	}
	return ds, rows.Err()
}

// DeleteDataset remove um dataset e seus itens
func (s *DatasetStore) DeleteDataset(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("erro ao remover dataset: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", models.ErrDatasetNotFound, name)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dataset_items WHERE dataset = ?`, name); err != nil {
		return fmt.Errorf("erro ao remover itens do dataset: %w", err)
	}
	return tx.Commit()
}
