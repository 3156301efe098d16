package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studyabroad/cms-api/model"
	"gorm.io/gorm"
)

const (
	RecentInquiriesLimit = 10
	DefaultTrendDays     = 30
	MaxTrendDays         = 365
	trendDayLayout       = "2006-01-02"
)

// DashboardService computes read-only counts for the admin dashboard.
// Every figure is queried at call time.
type DashboardService struct {
	db *gorm.DB
	// clock returns the server's current local time. Day boundaries follow its location.
	clock func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, clock: time.Now}
}

// DashboardStats is the overview shown on the dashboard home page
type DashboardStats struct {
	TotalCountries    int64                 `json:"total_countries"`
	TotalUniversities int64                 `json:"total_universities"`
	TotalMajors       int64                 `json:"total_majors"`
	TotalArticles     int64                 `json:"total_articles"`
	TotalInquiries    int64                 `json:"total_inquiries"`
	NewInquiriesToday int64                 `json:"new_inquiries_today"`
	InquiriesByStatus map[string]int64      `json:"inquiries_by_status"`
	InquiriesByLang   map[string]int64      `json:"inquiries_by_language"`
	RecentInquiries   []model.StudentInquiry `json:"recent_inquiries"`
}

// StatusCount splits a content table by publication status
type StatusCount struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// ContentStats breaks content down by status
type ContentStats struct {
	Countries        StatusCount `json:"countries"`
	Universities     StatusCount `json:"universities"`
	Majors           StatusCount `json:"majors"`
	Articles         StatusCount `json:"articles"`
	FeaturedArticles int64       `json:"featured_articles"`
	FAQs             StatusCount `json:"faqs"`
	UniversityMajors int64       `json:"university_majors"`
}

// InquiryTrendPoint counts the inquiries created on one day
type InquiryTrendPoint struct {
	Date      string `json:"date"`
	Total     int64  `json:"total"`
	New       int64  `json:"new"`
	Completed int64  `json:"completed"`
}

// GetDashboardStats retrieves the dashboard overview
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{}

	totals := []struct {
		table string
		model interface{}
		dest  *int64
	}{
		{"countries", &model.Country{}, &stats.TotalCountries},
		{"universities", &model.University{}, &stats.TotalUniversities},
		{"majors", &model.Major{}, &stats.TotalMajors},
		{"articles", &model.Article{}, &stats.TotalArticles},
		{"inquiries", &model.StudentInquiry{}, &stats.TotalInquiries},
	}
	for _, t := range totals {
		if err := db.Model(t.model).Count(t.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}

	// New inquiries since local midnight
	if err := db.Model(&model.StudentInquiry{}).
		Where("created_at >= ?", startOfDay(s.clock()).UTC()).
		Count(&stats.NewInquiriesToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's inquiries: %w", err)
	}

	var err error
	if stats.InquiriesByStatus, err = s.groupInquiries(db, "status"); err != nil {
		return nil, fmt.Errorf("failed to group inquiries by status: %w", err)
	}
	if stats.InquiriesByLang, err = s.groupInquiries(db, "language_code"); err != nil {
		return nil, fmt.Errorf("failed to group inquiries by language: %w", err)
	}

	stats.RecentInquiries = []model.StudentInquiry{}
	if err := db.Order("created_at DESC").
		Order("id DESC").
		Limit(RecentInquiriesLimit).
		Find(&stats.RecentInquiries).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent inquiries: %w", err)
	}

	return stats, nil
}

// groupInquiries counts inquiries per distinct value of column. Values with
// no rows are absent from the map.
func (s *DashboardService) groupInquiries(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		GroupValue string
		Total      int64
	}
	err := db.Model(&model.StudentInquiry{}).
		Select(column + " AS group_value, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.GroupValue] = r.Total
	}
	return counts, nil
}

// GetContentStats retrieves active/inactive counts for every content table
func (s *DashboardService) GetContentStats(ctx context.Context) (*ContentStats, error) {
	db := s.db.WithContext(ctx)
	stats := &ContentStats{}

	split := []struct {
		table string
		model interface{}
		dest  *StatusCount
	}{
		{"countries", &model.Country{}, &stats.Countries},
		{"universities", &model.University{}, &stats.Universities},
		{"majors", &model.Major{}, &stats.Majors},
		{"articles", &model.Article{}, &stats.Articles},
		{"faqs", &model.FAQ{}, &stats.FAQs},
	}
	for _, t := range split {
		if err := countByStatus(db, t.model, t.dest); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", t.table, err)
		}
	}

	if err := db.Model(&model.Article{}).
		Where("is_featured = ?", true).
		Count(&stats.FeaturedArticles).Error; err != nil {
		return nil, fmt.Errorf("failed to count featured articles: %w", err)
	}
	if err := db.Model(&model.UniversityMajor{}).Count(&stats.UniversityMajors).Error; err != nil {
		return nil, fmt.Errorf("failed to count university majors: %w", err)
	}

	return stats, nil
}

func countByStatus(db *gorm.DB, table interface{}, dest *StatusCount) error {
	if err := db.Model(table).Where("status = ?", model.StatusActive).Count(&dest.Active).Error; err != nil {
		return err
	}
	if err := db.Model(table).Where("status = ?", model.StatusInactive).Count(&dest.Inactive).Error; err != nil {
		return err
	}
	dest.Total = dest.Active + dest.Inactive
	return nil
}

// GetInquiryTrends returns one point per local day for the last days days,
// oldest first, including days without inquiries.
func (s *DashboardService) GetInquiryTrends(ctx context.Context, days int) ([]InquiryTrendPoint, error) {
	if days < 1 {
		days = DefaultTrendDays
	}
	if days > MaxTrendDays {
		days = MaxTrendDays
	}

	today := startOfDay(s.clock())
	from := today.AddDate(0, 0, -(days - 1))

	var rows []struct {
		CreatedAt time.Time
		Status    model.InquiryStatus
	}
	err := s.db.WithContext(ctx).
		Model(&model.StudentInquiry{}).
		Select("created_at", "status").
		Where("created_at >= ?", from.UTC()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiry trends: %w", err)
	}

	points := make([]InquiryTrendPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		date := from.AddDate(0, 0, i).Format(trendDayLayout)
		points[i].Date = date
		index[date] = i
	}

	loc := today.Location()
	for _, r := range rows {
		i, ok := index[r.CreatedAt.In(loc).Format(trendDayLayout)]
		if !ok {
			continue
		}
		points[i].Total++
		switch r.Status {
		case model.InquiryStatusNew:
			points[i].New++
		case model.InquiryStatusCompleted:
			points[i].Completed++
		}
	}

	return points, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
