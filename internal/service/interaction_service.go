package service

import (
	"context"
	"time"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"
	"go-blogadmin/internal/repository/dao"

	"go.uber.org/zap"
)

// CommentService 文章评论
type CommentService struct {
	CommentDAO *dao.CommentDAO
	Log        *logging.Logger
}

func NewCommentService(d *dao.CommentDAO, log *logging.Logger) *CommentService {
	return &CommentService{CommentDAO: d, Log: log}
}

func (s *CommentService) ListByArticle(ctx context.Context, articleID int64, page, size int) ([]model.Comment, int64, error) {
	return s.CommentDAO.ListByArticle(ctx, articleID, page, size)
}

func (s *CommentService) ListAdmin(ctx context.Context, isReview int8, page, size int) ([]model.Comment, int64, error) {
	return s.CommentDAO.ListAdmin(ctx, isReview, page, size)
}

func (s *CommentService) Create(ctx context.Context, c *model.Comment) error {
	c.CreateTime = time.Now().Unix()
	if err := s.CommentDAO.Create(ctx, c); err != nil {
		return err
	}
	s.Log.WithContext(ctx).Info("comment_created",
		zap.Int64("article_id", c.ArticleID), zap.Int64("reply_id", c.ReplyID))
	return nil
}

func (s *CommentService) Review(ctx context.Context, ids []int64, isReview int8) error {
	return s.CommentDAO.UpdateReview(ctx, ids, isReview)
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.CommentDAO.Delete(ctx, id)
}

// MessageService 留言板
type MessageService struct {
	MessageDAO *dao.MessageDAO
}

func NewMessageService(d *dao.MessageDAO) *MessageService { return &MessageService{MessageDAO: d} }

func (s *MessageService) ListPublic(ctx context.Context) ([]model.Message, error) {
	return s.MessageDAO.List(ctx, true)
}

func (s *MessageService) ListAdmin(ctx context.Context) ([]model.Message, error) {
	return s.MessageDAO.List(ctx, false)
}

func (s *MessageService) Create(ctx context.Context, m *model.Message) error {
	m.CreateTime = time.Now().Unix()
	return s.MessageDAO.Create(ctx, m)
}

func (s *MessageService) Review(ctx context.Context, ids []int64, isReview int8) error {
	return s.MessageDAO.UpdateReview(ctx, ids, isReview)
}

func (s *MessageService) Delete(ctx context.Context, ids []int64) error {
	return s.MessageDAO.Delete(ctx, ids)
}

// TalkService 说说
type TalkService struct {
	TalkDAO *dao.TalkDAO
}

func NewTalkService(d *dao.TalkDAO) *TalkService { return &TalkService{TalkDAO: d} }

func (s *TalkService) ListPublic(ctx context.Context, page, size int) ([]model.Talk, int64, error) {
	return s.TalkDAO.List(ctx, true, page, size)
}

func (s *TalkService) ListAdmin(ctx context.Context, page, size int) ([]model.Talk, int64, error) {
	return s.TalkDAO.List(ctx, false, page, size)
}

func (s *TalkService) Get(ctx context.Context, id int64) (*model.Talk, error) {
	return s.TalkDAO.FindByID(ctx, id)
}

func (s *TalkService) Save(ctx context.Context, t *model.Talk) error {
	now := time.Now().Unix()
	if t.ID == 0 {
		t.CreateTime = now
	}
	t.UpdateTime = now
	return s.TalkDAO.Save(ctx, t)
}

func (s *TalkService) Delete(ctx context.Context, id int64) error {
	return s.TalkDAO.Delete(ctx, id)
}
