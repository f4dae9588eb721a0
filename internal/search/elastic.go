package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go-blogadmin/internal/domain/model"
	"go-blogadmin/internal/logging"

	"github.com/olivere/elastic/v7"
	"go.uber.org/zap"
)

// ArticleDoc 索引文档
type ArticleDoc struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Status  int8   `json:"status"`
}

// ArticleIndexer 文章全文检索。client 为 nil 表示未启用，
// 调用方需自行降级到数据库 LIKE 检索。
type ArticleIndexer struct {
	client *elastic.Client
	index  string
	log    *logging.Logger
}

// New 连接 ES；enable 为 false 时返回空实现
func New(enable bool, addrs []string, username, password, index string, log *logging.Logger) (*ArticleIndexer, error) {
	if !enable {
		return &ArticleIndexer{index: index, log: log}, nil
	}
	opts := []elastic.ClientOptionFunc{
		elastic.SetURL(addrs...),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	}
	if username != "" {
		opts = append(opts, elastic.SetBasicAuth(username, password))
	}
	cli, err := elastic.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}
	return &ArticleIndexer{client: cli, index: index, log: log}, nil
}

func (x *ArticleIndexer) Enabled() bool { return x.client != nil }

// Index 写入或覆盖文档，文章保存后调用
func (x *ArticleIndexer) Index(ctx context.Context, a *model.Article) error {
	if x.client == nil {
		return nil
	}
	doc := ArticleDoc{ID: a.ID, Title: a.Title, Summary: a.Summary, Content: a.Content, Status: a.Status}
	_, err := x.client.Index().
		Index(x.index).
		Id(strconv.FormatInt(a.ID, 10)).
		BodyJson(doc).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("index article id=%d: %w", a.ID, err)
	}
	return nil
}

func (x *ArticleIndexer) Remove(ctx context.Context, id int64) error {
	if x.client == nil {
		return nil
	}
	_, err := x.client.Delete().Index(x.index).Id(strconv.FormatInt(id, 10)).Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return fmt.Errorf("remove article doc id=%d: %w", id, err)
	}
	return nil
}

// Search 标题/摘要/正文多字段检索，仅返回公开文章 ID
func (x *ArticleIndexer) Search(ctx context.Context, keyword string, limit int) ([]int64, error) {
	if x.client == nil {
		return nil, nil
	}
	q := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(keyword, "title^3", "summary^2", "content")).
		Filter(elastic.NewTermQuery("status", model.ArticleStatusPublic))
	res, err := x.client.Search().Index(x.index).Query(q).Size(limit).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ArticleDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			x.log.Warn("es_hit_decode_failed", zap.String("doc_id", hit.Id), zap.Error(err))
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
