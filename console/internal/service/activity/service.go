package activity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Astemirdum/library-console/console/internal/model"
	"github.com/Astemirdum/library-console/pkg/kafka"
	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

type Library interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, q model.BookQuery) ([]model.Book, error)
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	DeleteBook(ctx context.Context, id int) (model.Book, error)
	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error)
	ListAuthorBooks(ctx context.Context, authorID int) ([]model.Book, error)
	ListBorrowings(ctx context.Context) ([]model.Borrowing, error)
	ListOverdueBorrowings(ctx context.Context) ([]model.Borrowing, error)
	CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error)
	ReturnBorrowing(ctx context.Context, id int) (model.Borrowing, error)
}

// Service publishes an activity event after every successful mutation.
// Reads pass straight through to the wrapped Library.
type Service struct {
	Library
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
	now      func() time.Time
}

func NewService(lib Library, producer sarama.SyncProducer, topic string, log *zap.Logger) *Service {
	if topic == "" {
		topic = kafka.ActivityTopic
	}
	return &Service{
		Library:  lib,
		producer: producer,
		topic:    topic,
		log:      log.Named("activity"),
		now:      time.Now,
	}
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	book, err := s.Library.CreateBook(ctx, req)
	if err == nil {
		s.publish(kafka.ActionBookCreated, book.ID)
	}
	return book, err
}

func (s *Service) DeleteBook(ctx context.Context, id int) (model.Book, error) {
	book, err := s.Library.DeleteBook(ctx, id)
	if err == nil {
		s.publish(kafka.ActionBookDeleted, id)
	}
	return book, err
}

func (s *Service) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (model.Author, error) {
	author, err := s.Library.CreateAuthor(ctx, req)
	if err == nil {
		s.publish(kafka.ActionAuthorCreated, author.ID)
	}
	return author, err
}

func (s *Service) CreateBorrowing(ctx context.Context, req model.CreateBorrowingRequest) (model.Borrowing, error) {
	borrowing, err := s.Library.CreateBorrowing(ctx, req)
	if err == nil {
		s.publish(kafka.ActionBorrowingCreated, borrowing.ID)
	}
	return borrowing, err
}

func (s *Service) ReturnBorrowing(ctx context.Context, id int) (model.Borrowing, error) {
	borrowing, err := s.Library.ReturnBorrowing(ctx, id)
	if err == nil {
		s.publish(kafka.ActionBorrowingReturned, id)
	}
	return borrowing, err
}

// publish never fails the user action, a lost event is only logged.
func (s *Service) publish(action kafka.Action, entityID int) {
	event := kafka.NewEventActivity(action, entityID, s.now())
	data, err := json.Marshal(event)
	if err != nil {
		s.log.Warn("marshal activity", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(action),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := s.producer.SendMessage(msg); err != nil {
		s.log.Warn("publish activity", zap.String("action", string(action)), zap.Int("entity_id", entityID), zap.Error(err))
		return
	}
	s.log.Debug("activity published", zap.String("action", string(action)), zap.Int("entity_id", entityID))
}
