package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
)

const resultsSchema = `
create table if not exists graded_sheets (
	id               bigserial primary key,
	user_id          bigint not null,
	file_name        text not null,
	mode             text not null,
	student_id       text not null,
	first_name       text not null default '',
	last_name        text not null default '',
	score            int not null,
	total            int not null,
	multiple_answers int not null default 0,
	duplicate        boolean not null default false,
	partial          boolean not null default false,
	error            text not null default '',
	rendition_name   text not null default '',
	details          jsonb not null,
	created_at       timestamptz not null default now()
);
create index if not exists graded_sheets_user_idx on graded_sheets(user_id, id);`

// sheetDetails поля бланка, которые хранятся одним jsonb.
type sheetDetails struct {
	FailedColumns []int                         `json:"failed_columns,omitempty"`
	Answers       map[int]entity.QuestionResult `json:"answers"`
}

// PostgresResultRepository хранилище результатов в Postgres (драйвер pgx через database/sql).
type PostgresResultRepository struct{ DB *sql.DB }

// OpenPostgres подключается к базе, проверяет соединение и создаёт таблицу, если её нет.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, resultsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

func NewPostgresResultRepository(db *sql.DB) *PostgresResultRepository {
	return &PostgresResultRepository{DB: db}
}

// Save пишет все бланки одной транзакцией.
func (r *PostgresResultRepository) Save(ctx context.Context, userID int64, sheets ...entity.GradedSheet) error {
	if len(sheets) == 0 {
		return nil
	}
	const q = `
insert into graded_sheets(user_id, file_name, mode, student_id, first_name, last_name, score, total,
	multiple_answers, duplicate, partial, error, rendition_name, details, created_at)
values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range sheets {
		js, err := encodeDetails(s)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.FileName, err)
		}
		created := s.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, userID, s.FileName, string(s.Mode), s.StudentID, s.FirstName, s.LastName,
			s.Score, s.Total, s.MultipleAnswers, s.Duplicate, s.Partial, s.Error, s.RenditionName, js, created); err != nil {
			return fmt.Errorf("insert %s: %w", s.FileName, err)
		}
	}
	return tx.Commit()
}

// List возвращает бланки пользователя в порядке добавления.
func (r *PostgresResultRepository) List(ctx context.Context, userID int64) ([]entity.GradedSheet, error) {
	const q = `
select file_name, mode, student_id, first_name, last_name, score, total, multiple_answers,
	duplicate, partial, error, rendition_name, details, created_at
from graded_sheets
where user_id=$1
order by id`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.GradedSheet
	for rows.Next() {
		var (
			s    entity.GradedSheet
			mode string
			js   []byte
		)
		if err := rows.Scan(&s.FileName, &mode, &s.StudentID, &s.FirstName, &s.LastName, &s.Score, &s.Total,
			&s.MultipleAnswers, &s.Duplicate, &s.Partial, &s.Error, &s.RenditionName, &js, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Mode = entity.Mode(mode)
		if err := decodeDetails(js, &s); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.FileName, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Clear удаляет результаты пользователя.
func (r *PostgresResultRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(ctx, `delete from graded_sheets where user_id=$1`, userID)
	return err
}

func encodeDetails(s entity.GradedSheet) ([]byte, error) {
	answers := s.Answers
	if answers == nil {
		answers = map[int]entity.QuestionResult{}
	}
	return json.Marshal(sheetDetails{FailedColumns: s.FailedColumns, Answers: answers})
}

func decodeDetails(js []byte, s *entity.GradedSheet) error {
	var d sheetDetails
	if err := json.Unmarshal(js, &d); err != nil {
		return err
	}
	s.FailedColumns = d.FailedColumns
	s.Answers = d.Answers
	return nil
}

// Проверка реализации интерфейса
var _ port.ResultRepository = (*PostgresResultRepository)(nil)
