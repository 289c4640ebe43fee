package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type studentRepo struct {
	db *pgxpool.Pool
}

func newStudentRepo(db *pgxpool.Pool) Student {
	return &studentRepo{
		db: db,
	}
}

func (r *studentRepo) Create(ctx context.Context, student model.Student) error {
	_, err := r.db.Exec(ctx, "INSERT INTO students(id, full_name, email) VALUES($1, $2, $3)", student.ID, student.FullName, student.Email)
	if err != nil {
		return storeErr("creating student", err)
	}
	return nil
}

// FindByID returns (nil, nil) when no student matches: an unknown
// recipient is a normal outcome, not a store failure.
func (r *studentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	var student model.Student
	if err := r.db.QueryRow(ctx, "SELECT s.id, s.full_name, s.email FROM students s WHERE s.id = $1", id).Scan(
		&student.ID,
		&student.FullName,
		&student.Email,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("finding student", err)
	}

	return &student, nil
}

func (r *studentRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	query := "UPDATE students SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i) + " RETURNING id"
	args = append(args, id)

	var returnedID uuid.UUID
	err := r.db.QueryRow(ctx, query, args...).Scan(&returnedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return storeErr("updating student", err)
	}
	return nil
}
