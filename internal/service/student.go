package service

import (
	"context"
	"encoding/json"

	"github.com/CampusDesk/notification-service/internal/dto"
	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/CampusDesk/notification-service/internal/rabbitmq"
	"github.com/CampusDesk/notification-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// studentService mirrors the student directory owned by the main
// application, fed by its create/update events, so recipient lookups
// are local reads.
type studentService struct {
	logger *zap.Logger
	repo *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newStudentService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) Student {
	return &studentService{
		logger: logger,
		repo: repo,
		rabbitmq: mq,
	}
}

func (s *studentService) create(ctx context.Context, student model.Student) error {
	return s.repo.Postgres.Student.Create(ctx, student)
}

func (s *studentService) FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	return s.repo.Postgres.Student.FindByID(ctx, id)
}

func (s *studentService) updateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	allowedFields := []string{"full_name", "email"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			delete(updates, field)
		}
	}

	if len(updates) == 0 {
		return nil
	}

	return s.repo.Postgres.Student.UpdateByID(ctx, id, updates)
}

func (s *studentService) StartCreating(ctx context.Context) {
	msgs, err := s.rabbitmq.ConsumeExchange(rabbitmq.STUDENTS_CREATED_EXCHANGE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var studentCreated dto.MQStudentCreated
		if err := json.Unmarshal(msg.Body, &studentCreated); err != nil {
			msg.Ack(false)
			continue
		}

		if err := s.create(ctx, model.Student{
			ID: studentCreated.ID,
			FullName: studentCreated.FullName,
			Email: studentCreated.Email,
		}); err != nil {
			s.logger.Sugar().Errorf("failed to create student(%s): %s", studentCreated.ID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		msg.Ack(false)
	}
}

func (s *studentService) StartUpdating(ctx context.Context) {
	msgs, err := s.rabbitmq.ConsumeExchange(rabbitmq.STUDENTS_UPDATE_EXCHANGE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var updates map[string]interface{}
		if err := json.Unmarshal(msg.Body, &updates); err != nil {
			msg.Ack(false)
			continue
		}

		studentIDString, ok := updates["student_id"].(string)
		if !ok {
			msg.Ack(false)
			continue
		}
		studentID, err := uuid.Parse(studentIDString)
		if err != nil {
			msg.Ack(false)
			continue
		}

		delete(updates, "student_id")

		if err := s.updateByID(ctx, studentID, updates); err != nil {
			s.logger.Sugar().Errorf("failed to update student(%s): %s", studentID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		msg.Ack(false)
	}
}
