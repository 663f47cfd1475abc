package services

import (
	"fmt"
	"time"

	"petstore_manager/internal/models"
	"petstore_manager/internal/redis"

	"gorm.io/gorm"
)

type DailyBucket struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

type TopProduct struct {
	ProductName string `json:"product_name"`
	Sold        int64  `json:"sold"`
	Revenue     int64  `json:"revenue"`
}

type SalesSummary struct {
	TotalRevenue int64         `json:"total_revenue"`
	TotalOrders  int64         `json:"total_orders"`
	Daily        []DailyBucket `json:"daily"`
	TopSelling   []TopProduct  `json:"top_selling"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type ReportService interface {
	GetSalesSummary(start, end time.Time) (*SalesSummary, error)
	GetOrderStatusBreakdown() ([]StatusCount, error)
	GetAttendanceSummary(startDate, endDate string) ([]StatusCount, error)
}

type reportService struct {
	db       *gorm.DB
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewReportService(db *gorm.DB, cache *redis.Client, cacheTTL time.Duration) ReportService {
	return &reportService{db: db, cache: cache, cacheTTL: cacheTTL}
}

func (s *reportService) GetSalesSummary(start, end time.Time) (*SalesSummary, error) {
	cacheKey := fmt.Sprintf("sales:%s:%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	if s.cache != nil {
		var cached SalesSummary
		if err := s.cache.GetReport(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var summary SalesSummary
	base := s.db.Model(&models.Order{}).
		Where("order_date BETWEEN ? AND ?", start, end).
		Where("status <> ?", string(models.OrderCancelled))

	// COALESCE ensures we get 0 instead of NULL if no orders exist
	err := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate revenue: %w", err)
	}

	err = base.Session(&gorm.Session{}).Count(&summary.TotalOrders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	orders, err := s.ordersInRange(start, end)
	if err != nil {
		return nil, err
	}
	summary.Daily = bucketByDay(orders, start, end)

	err = s.db.Table("order_items").
		Select("order_items.name as product_name, SUM(order_items.quantity) as sold, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN orders ON order_items.order_id = orders.id").
		Where("orders.order_date BETWEEN ? AND ?", start, end).
		Where("orders.status <> ?", string(models.OrderCancelled)).
		Where("orders.deleted_at IS NULL AND order_items.deleted_at IS NULL").
		Group("order_items.name").
		Order("sold desc").
		Limit(5).
		Scan(&summary.TopSelling).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top selling products: %w", err)
	}

	if s.cache != nil {
		s.cache.SetReport(cacheKey, &summary, s.cacheTTL)
	}
	return &summary, nil
}

func (s *reportService) ordersInRange(start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Where("order_date BETWEEN ? AND ?", start, end).
		Where("status <> ?", string(models.OrderCancelled)).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// bucketByDay folds orders into one revenue/count bucket per calendar day so
// the dashboard chart always has a continuous axis, zero-filled on quiet days.
func bucketByDay(orders []models.Order, start, end time.Time) []DailyBucket {
	index := make(map[string]*DailyBucket)
	var buckets []DailyBucket
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		buckets = append(buckets, DailyBucket{Date: key})
		index[key] = &buckets[len(buckets)-1]
	}
	for _, order := range orders {
		key := order.OrderDate.Format("2006-01-02")
		if bucket, ok := index[key]; ok {
			bucket.Revenue += order.Amount
			bucket.Orders++
		}
	}
	return buckets
}

func (s *reportService) GetOrderStatusBreakdown() ([]StatusCount, error) {
	var counts []StatusCount
	err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	return counts, nil
}

func (s *reportService) GetAttendanceSummary(startDate, endDate string) ([]StatusCount, error) {
	var counts []StatusCount
	err := s.db.Model(&models.AttendanceRecord{}).
		Select("status, COUNT(*) as count").
		Where("work_date BETWEEN ? AND ?", startDate, endDate).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance by status: %w", err)
	}
	return counts, nil
}
