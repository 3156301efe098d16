package services

import (
	"context"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/gorm"
)

const (
	DefaultFeaturedLimit = 5
	DefaultRelatedLimit  = 5
)

var articleSearchColumns = []string{
	"title_ar", "title_en", "title_tr", "title_ms",
	"slug",
	"content_ar", "content_en", "content_tr", "content_ms",
}

// ArticleService manages editorial content
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates a new article service
func NewArticleService(db *gorm.DB) *ArticleService {
	return &ArticleService{db: db}
}

// ArticleFilter narrows ListArticles
type ArticleFilter struct {
	query.Params
	CountryID  *uint         `json:"country_id"`
	MajorID    *uint         `json:"major_id"`
	Category   *string       `json:"category"`
	Status     *model.Status `json:"status" validate:"omitempty,enum"`
	IsFeatured *bool         `json:"is_featured"`
	Search     string        `json:"search"`
}

// CreateArticleInput is the payload for a new article
type CreateArticleInput struct {
	TitleAr          string       `json:"title_ar" validate:"required"`
	TitleEn          string       `json:"title_en" validate:"required"`
	TitleTr          string       `json:"title_tr" validate:"required"`
	TitleMs          string       `json:"title_ms" validate:"required"`
	Slug             string       `json:"slug" validate:"required,slug"`
	ContentAr        *string      `json:"content_ar"`
	ContentEn        *string      `json:"content_en"`
	ContentTr        *string      `json:"content_tr"`
	ContentMs        *string      `json:"content_ms"`
	ExcerptAr        *string      `json:"excerpt_ar"`
	ExcerptEn        *string      `json:"excerpt_en"`
	ExcerptTr        *string      `json:"excerpt_tr"`
	ExcerptMs        *string      `json:"excerpt_ms"`
	FeaturedImageURL *string      `json:"featured_image_url"`
	Category         *string      `json:"category"`
	CountryID        *uint        `json:"country_id"`
	MajorID          *uint        `json:"major_id"`
	Status           model.Status `json:"status" validate:"omitempty,enum"`
	IsFeatured       bool         `json:"is_featured"`
	model.SEOMeta
}

// UpdateArticleInput changes only the fields present in the payload
type UpdateArticleInput struct {
	TitleAr          optional.Field[string]       `json:"title_ar" validate:"omitempty,min=1"`
	TitleEn          optional.Field[string]       `json:"title_en" validate:"omitempty,min=1"`
	TitleTr          optional.Field[string]       `json:"title_tr" validate:"omitempty,min=1"`
	TitleMs          optional.Field[string]       `json:"title_ms" validate:"omitempty,min=1"`
	Slug             optional.Field[string]       `json:"slug" validate:"omitempty,slug"`
	ContentAr        optional.Nullable[string]    `json:"content_ar"`
	ContentEn        optional.Nullable[string]    `json:"content_en"`
	ContentTr        optional.Nullable[string]    `json:"content_tr"`
	ContentMs        optional.Nullable[string]    `json:"content_ms"`
	ExcerptAr        optional.Nullable[string]    `json:"excerpt_ar"`
	ExcerptEn        optional.Nullable[string]    `json:"excerpt_en"`
	ExcerptTr        optional.Nullable[string]    `json:"excerpt_tr"`
	ExcerptMs        optional.Nullable[string]    `json:"excerpt_ms"`
	FeaturedImageURL optional.Nullable[string]    `json:"featured_image_url"`
	Category         optional.Nullable[string]    `json:"category"`
	CountryID        optional.Nullable[uint]      `json:"country_id"`
	MajorID          optional.Nullable[uint]      `json:"major_id"`
	Status           optional.Field[model.Status] `json:"status" validate:"omitempty,enum"`
	IsFeatured       optional.Field[bool]         `json:"is_featured"`
	SEOPatch
}

// ListArticles returns one page of articles matching the filter
func (s *ArticleService) ListArticles(ctx context.Context, filter ArticleFilter) (query.Page[model.Article], error) {
	if err := validateInput(filter); err != nil {
		return query.Page[model.Article]{}, err
	}

	q := s.db.WithContext(ctx)
	q = query.Equal(q, "country_id", filter.CountryID)
	q = query.Equal(q, "major_id", filter.MajorID)
	q = query.Equal(q, "category", filter.Category)
	q = query.Equal(q, "status", filter.Status)
	q = query.Equal(q, "is_featured", filter.IsFeatured)
	q = query.Search(q, filter.Search, articleSearchColumns...)

	page, err := query.Paginate[model.Article](q, filter.Params)
	if err != nil {
		return page, fmt.Errorf("failed to list articles: %w", err)
	}
	return page, nil
}

// GetArticleByID returns the article or nil when it does not exist
func (s *ArticleService) GetArticleByID(ctx context.Context, id uint) (*model.Article, error) {
	article, err := findByID[model.Article](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

// GetArticleBySlug returns the active article with slug. Inactive articles are not found.
func (s *ArticleService) GetArticleBySlug(ctx context.Context, slug string) (*model.Article, error) {
	article, err := findOne[model.Article](s.db.WithContext(ctx), "slug = ? AND status = ?", slug, model.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get article by slug: %w", err)
	}
	return article, nil
}

// GetFeaturedArticles returns up to limit active featured articles, newest first
func (s *ArticleService) GetFeaturedArticles(ctx context.Context, limit int) ([]model.Article, error) {
	if limit < 1 {
		limit = DefaultFeaturedLimit
	}
	articles, err := s.activeArticles(s.db.WithContext(ctx).Where("is_featured = ?", true), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get featured articles: %w", err)
	}
	return articles, nil
}

// GetRelatedArticles returns up to limit active articles sharing the country or
// major of the article id, excluding the article itself. An unknown id or an
// article with neither link yields an empty list.
func (s *ArticleService) GetRelatedArticles(ctx context.Context, id uint, limit int) ([]model.Article, error) {
	if limit < 1 {
		limit = DefaultRelatedLimit
	}

	db := s.db.WithContext(ctx)
	article, err := findByID[model.Article](db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get related articles: %w", err)
	}
	if article == nil || (article.CountryID == nil && article.MajorID == nil) {
		return []model.Article{}, nil
	}

	related := db.Where("id <> ?", id)
	switch {
	case article.CountryID != nil && article.MajorID != nil:
		related = related.Where("(country_id = ? OR major_id = ?)", *article.CountryID, *article.MajorID)
	case article.CountryID != nil:
		related = related.Where("country_id = ?", *article.CountryID)
	default:
		related = related.Where("major_id = ?", *article.MajorID)
	}

	articles, err := s.activeArticles(related, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get related articles: %w", err)
	}
	return articles, nil
}

// GetArticlesByCountry returns active articles about a country, newest first.
// A limit below 1 returns all of them.
func (s *ArticleService) GetArticlesByCountry(ctx context.Context, countryID uint, limit int) ([]model.Article, error) {
	articles, err := s.activeArticles(s.db.WithContext(ctx).Where("country_id = ?", countryID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles by country: %w", err)
	}
	return articles, nil
}

// GetArticlesByMajor returns active articles about a major, newest first.
// A limit below 1 returns all of them.
func (s *ArticleService) GetArticlesByMajor(ctx context.Context, majorID uint, limit int) ([]model.Article, error) {
	articles, err := s.activeArticles(s.db.WithContext(ctx).Where("major_id = ?", majorID), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get articles by major: %w", err)
	}
	return articles, nil
}

func (s *ArticleService) activeArticles(q *gorm.DB, limit int) ([]model.Article, error) {
	articles := []model.Article{}
	q = q.Where("status = ?", model.StatusActive).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// CreateArticle inserts a new article. Status defaults to ACTIVE.
func (s *ArticleService) CreateArticle(ctx context.Context, in CreateArticleInput) (*model.Article, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	article := model.Article{
		TitleAr:          in.TitleAr,
		TitleEn:          in.TitleEn,
		TitleTr:          in.TitleTr,
		TitleMs:          in.TitleMs,
		Slug:             in.Slug,
		ContentAr:        in.ContentAr,
		ContentEn:        in.ContentEn,
		ContentTr:        in.ContentTr,
		ContentMs:        in.ContentMs,
		ExcerptAr:        in.ExcerptAr,
		ExcerptEn:        in.ExcerptEn,
		ExcerptTr:        in.ExcerptTr,
		ExcerptMs:        in.ExcerptMs,
		FeaturedImageURL: in.FeaturedImageURL,
		Category:         in.Category,
		CountryID:        in.CountryID,
		MajorID:          in.MajorID,
		Status:           statusOrDefault(in.Status),
		IsFeatured:       in.IsFeatured,
		SEOMeta:          in.SEOMeta,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureArticleLinks(tx, in.CountryID, in.MajorID); err != nil {
			return err
		}
		if err := ensureUnique[model.Article](tx, "slug", in.Slug, 0, articleSlugTaken(in.Slug)); err != nil {
			return err
		}
		return tx.Omit("Country", "Major").Create(&article).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create article", articleSlugTaken(in.Slug))
	}
	return &article, nil
}

// UpdateArticle applies the present fields of in. It returns nil when id does not exist.
func (s *ArticleService) UpdateArticle(ctx context.Context, id uint, in UpdateArticleInput) (*model.Article, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Article
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.Article](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		if err := ensureArticleLinks(tx, in.CountryID.Ptr(), in.MajorID.Ptr()); err != nil {
			return err
		}
		if slug, ok := in.Slug.Get(); ok && slug != current.Slug {
			if err := ensureUnique[model.Article](tx, "slug", slug, id, articleSlugTaken(slug)); err != nil {
				return err
			}
		}

		changes := query.Changes{}
		query.SetField(changes, "title_ar", in.TitleAr)
		query.SetField(changes, "title_en", in.TitleEn)
		query.SetField(changes, "title_tr", in.TitleTr)
		query.SetField(changes, "title_ms", in.TitleMs)
		query.SetField(changes, "slug", in.Slug)
		query.SetNullable(changes, "content_ar", in.ContentAr)
		query.SetNullable(changes, "content_en", in.ContentEn)
		query.SetNullable(changes, "content_tr", in.ContentTr)
		query.SetNullable(changes, "content_ms", in.ContentMs)
		query.SetNullable(changes, "excerpt_ar", in.ExcerptAr)
		query.SetNullable(changes, "excerpt_en", in.ExcerptEn)
		query.SetNullable(changes, "excerpt_tr", in.ExcerptTr)
		query.SetNullable(changes, "excerpt_ms", in.ExcerptMs)
		query.SetNullable(changes, "featured_image_url", in.FeaturedImageURL)
		query.SetNullable(changes, "category", in.Category)
		query.SetNullable(changes, "country_id", in.CountryID)
		query.SetNullable(changes, "major_id", in.MajorID)
		query.SetField(changes, "status", in.Status)
		query.SetField(changes, "is_featured", in.IsFeatured)
		in.SEOPatch.apply(changes)
		changes.Touch(now(tx))

		if err := tx.Model(&model.Article{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.Article](tx, id)
		return err
	})
	if err != nil {
		slug, _ := in.Slug.Get()
		return nil, wrapWrite(err, "update article", articleSlugTaken(slug))
	}
	return updated, nil
}

// DeleteArticle removes the article and reports whether it existed
func (s *ArticleService) DeleteArticle(ctx context.Context, id uint) (bool, error) {
	deleted, err := deleteByID[model.Article](s.db.WithContext(ctx), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}
	return deleted, nil
}

// ensureArticleLinks verifies the optional country and major references that are set
func ensureArticleLinks(tx *gorm.DB, countryID, majorID *uint) error {
	if countryID != nil {
		if err := ensureExists[model.Country](tx, "country", *countryID); err != nil {
			return err
		}
	}
	if majorID != nil {
		if err := ensureExists[model.Major](tx, "major", *majorID); err != nil {
			return err
		}
	}
	return nil
}

func articleSlugTaken(slug string) string {
	return fmt.Sprintf("article with slug %q already exists", slug)
}
