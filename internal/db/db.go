// Package db persists knowledge items and review logs in a local sqlite
// database. Scheduling writes are single statements so an item's review
// state is never half-updated.
package db

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/SheaGuev/studykit/internal/models"
)

// Store wraps the sqlite database. Not safe for concurrent writers to the
// same item; serialize per-item updates at the call site.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates (if needed) and opens the database under dataDir.
// A nil logger disables diagnostics.
func Open(dataDir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "cannot create data directory")
	}

	dbPath := filepath.Join(dataDir, "studykit.db")
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite database")
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}

	logger.Debug("store opened", zap.String("path", dbPath))
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS knowledge_items (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			content TEXT,
			source_file_id TEXT,
			source_folder_id TEXT,
			review_count INTEGER DEFAULT 0,
			ease_factor INTEGER DEFAULT 250,
			interval INTEGER DEFAULT 1,
			performance INTEGER DEFAULT 0,
			last_reviewed DATETIME,
			next_review DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS item_tags (
			item_id TEXT,
			tag_id INTEGER,
			position INTEGER DEFAULT 0,
			PRIMARY KEY (item_id, tag_id),
			FOREIGN KEY (item_id) REFERENCES knowledge_items(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS review_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id TEXT,
			user_id TEXT,
			quality INTEGER,
			reviewed_at DATETIME,
			interval_snapshot INTEGER,
			ease_factor_snapshot INTEGER,
			FOREIGN KEY (item_id) REFERENCES knowledge_items(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_user ON knowledge_items(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_logs_item ON review_logs(item_id);`,
	}
	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}

	// Earlier databases predate the performance column.
	if !columnExists(db, "knowledge_items", "performance") {
		db.Exec("ALTER TABLE knowledge_items ADD COLUMN performance INTEGER DEFAULT 0")
	}

	return nil
}

func columnExists(db *sql.DB, tableName, colName string) bool {
	rows, err := db.Query("SELECT " + colName + " FROM " + tableName + " LIMIT 0")
	if err != nil {
		return false
	}
	rows.Close()
	return true
}

// AddItem inserts the item and links its tags.
func (s *Store) AddItem(item models.KnowledgeItem) error {
	_, err := s.db.Exec(`
		INSERT INTO knowledge_items
			(id, user_id, type, content, source_file_id, source_folder_id,
			 review_count, ease_factor, interval, performance, last_reviewed, next_review)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.UserID, string(item.Type), item.Content,
		item.SourceFileID, item.SourceFolderID,
		item.ReviewCount, item.EaseFactor, item.Interval, item.Performance,
		nullTime(item.LastReviewed), nullTime(item.NextReviewDate),
	)
	if err != nil {
		return errors.Wrap(err, "insert item")
	}

	for pos, tag := range item.Tags {
		if err := s.linkTag(item.ID, tag, pos); err != nil {
			return err
		}
	}
	s.logger.Debug("item added", zap.String("id", item.ID), zap.String("type", string(item.Type)))
	return nil
}

func (s *Store) linkTag(itemID, tagName string, position int) error {
	tagName = strings.ToLower(strings.TrimSpace(tagName))
	if tagName == "" {
		return nil
	}

	if _, err := s.db.Exec(`INSERT OR IGNORE INTO tags (name) VALUES (?)`, tagName); err != nil {
		return errors.Wrap(err, "ensure tag")
	}

	var tagID int
	if err := s.db.QueryRow("SELECT id FROM tags WHERE name = ?", tagName).Scan(&tagID); err != nil {
		return errors.Wrap(err, "lookup tag id")
	}

	_, err := s.db.Exec(`INSERT OR IGNORE INTO item_tags (item_id, tag_id, position) VALUES (?, ?, ?)`,
		itemID, tagID, position)
	return errors.Wrap(err, "link tag")
}

const itemColumns = `id, user_id, type, content, source_file_id, source_folder_id,
	review_count, ease_factor, interval, performance, last_reviewed, next_review`

// GetItem fetches one item by id.
func (s *Store) GetItem(id string) (*models.KnowledgeItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM knowledge_items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err != nil {
		return nil, err
	}
	item.Tags, _ = s.tagsForItem(item.ID)
	return item, nil
}

// ListItems returns all of a user's items, soonest review first
// (never-reviewed items sort ahead since their next_review is NULL).
func (s *Store) ListItems(userID string) ([]models.KnowledgeItem, error) {
	rows, err := s.db.Query(`SELECT `+itemColumns+` FROM knowledge_items WHERE user_id = ? ORDER BY next_review ASC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list items")
	}
	defer rows.Close()

	var items []models.KnowledgeItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		item.Tags, _ = s.tagsForItem(item.ID)
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.KnowledgeItem, error) {
	var item models.KnowledgeItem
	var typ string
	var content, fileID, folderID sql.NullString
	var lastReviewed, nextReview sql.NullTime

	err := row.Scan(&item.ID, &item.UserID, &typ, &content, &fileID, &folderID,
		&item.ReviewCount, &item.EaseFactor, &item.Interval, &item.Performance,
		&lastReviewed, &nextReview)
	if err != nil {
		return nil, errors.Wrap(err, "scan item")
	}

	item.Type = models.ItemType(typ)
	item.Content = content.String
	item.SourceFileID = fileID.String
	item.SourceFolderID = folderID.String
	if lastReviewed.Valid {
		t := lastReviewed.Time
		item.LastReviewed = &t
	}
	if nextReview.Valid {
		t := nextReview.Time
		item.NextReviewDate = &t
	}
	return &item, nil
}

func (s *Store) tagsForItem(itemID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT t.name
		FROM tags t
		JOIN item_tags it ON t.id = it.tag_id
		WHERE it.item_id = ?
		ORDER BY it.position ASC`, itemID)
	if err != nil {
		return nil, errors.Wrap(err, "tags for item")
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			tags = append(tags, name)
		}
	}
	return tags, rows.Err()
}

// UpdateReviewState persists the scheduling fields produced by one recall
// result as a single statement.
func (s *Store) UpdateReviewState(item models.KnowledgeItem) error {
	res, err := s.db.Exec(`
		UPDATE knowledge_items
		SET review_count=?, ease_factor=?, interval=?, performance=?, last_reviewed=?, next_review=?
		WHERE id=?`,
		item.ReviewCount, item.EaseFactor, item.Interval, item.Performance,
		nullTime(item.LastReviewed), nullTime(item.NextReviewDate), item.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update review state")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("item %s not found", item.ID)
	}
	s.logger.Debug("review state updated",
		zap.String("id", item.ID),
		zap.Int("interval", item.Interval),
		zap.Int("ease_factor", item.EaseFactor))
	return nil
}

// UpdateItemDetails replaces the user-editable fields (content, type,
// source refs) and the full tag set.
func (s *Store) UpdateItemDetails(item models.KnowledgeItem) error {
	_, err := s.db.Exec(`
		UPDATE knowledge_items
		SET type=?, content=?, source_file_id=?, source_folder_id=?
		WHERE id=?`,
		string(item.Type), item.Content, item.SourceFileID, item.SourceFolderID, item.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update item details")
	}

	// Full tag replacement: the caller passes the desired final tag set.
	if _, err := s.db.Exec("DELETE FROM item_tags WHERE item_id=?", item.ID); err != nil {
		return errors.Wrap(err, "clear item tags")
	}
	for pos, tag := range item.Tags {
		if err := s.linkTag(item.ID, tag, pos); err != nil {
			return err
		}
	}
	return nil
}

// DeleteItem removes the item; cascades clean up tag links and logs.
func (s *Store) DeleteItem(id string) error {
	res, err := s.db.Exec("DELETE FROM knowledge_items WHERE id=?", id)
	if err != nil {
		return errors.Wrap(err, "delete item")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("item %s not found", id)
	}
	return nil
}

// AddReviewLog appends one recall result to the history.
func (s *Store) AddReviewLog(log models.ReviewLog) error {
	_, err := s.db.Exec(`
		INSERT INTO review_logs (item_id, user_id, quality, reviewed_at, interval_snapshot, ease_factor_snapshot)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.ItemID, log.UserID, log.Quality, log.ReviewedAt, log.Interval, log.EaseFactor,
	)
	return errors.Wrap(err, "insert review log")
}

// GetReviewStats aggregates a user's review history.
func (s *Store) GetReviewStats(userID string) (*models.ReviewStats, error) {
	stats := &models.ReviewStats{
		CountByType: make(map[models.ItemType]int),
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM review_logs WHERE user_id = ?", userID).Scan(&stats.TotalReviews); err != nil {
		return nil, errors.Wrap(err, "count reviews")
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.db.QueryRow("SELECT COUNT(*) FROM review_logs WHERE user_id = ? AND reviewed_at > ?", userID, weekAgo).Scan(&stats.ReviewsLast7Days); err != nil {
		return nil, errors.Wrap(err, "count recent reviews")
	}

	var avgQuality sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(quality) FROM review_logs WHERE user_id = ?", userID).Scan(&avgQuality); err != nil {
		return nil, errors.Wrap(err, "average quality")
	}
	if avgQuality.Valid {
		stats.AverageQuality = avgQuality.Float64
	}

	var avgPerf sql.NullFloat64
	if err := s.db.QueryRow("SELECT AVG(performance) FROM knowledge_items WHERE user_id = ?", userID).Scan(&avgPerf); err != nil {
		return nil, errors.Wrap(err, "average performance")
	}
	if avgPerf.Valid {
		stats.AveragePerformance = avgPerf.Float64
	}

	rows, err := s.db.Query("SELECT type, COUNT(*) FROM knowledge_items WHERE user_id = ? GROUP BY type", userID)
	if err != nil {
		return nil, errors.Wrap(err, "count by type")
	}
	defer rows.Close()
	for rows.Next() {
		var typ string
		var count int
		if err := rows.Scan(&typ, &count); err == nil {
			stats.CountByType[models.ItemType(typ)] = count
		}
	}

	return stats, rows.Err()
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
