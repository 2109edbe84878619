// internal/services/admin_service.go
package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

type AdminService struct {
	db  *gorm.DB
	now func() time.Time
}

type AdminDashboardStats struct {
	TotalUsers        int64            `json:"total_users"`
	AdminUsers        int64            `json:"admin_users"`
	NewUsersThisMonth int64            `json:"new_users_this_month"`
	TotalProducts     int64            `json:"total_products"`
	ActiveProducts    int64            `json:"active_products"`
	TotalOrders       int64            `json:"total_orders"`
	OrdersByStatus    map[string]int64 `json:"orders_by_status"`
	TotalRevenue      float64          `json:"total_revenue"`
	MonthlyRevenue    float64          `json:"monthly_revenue"`
	RevenueGrowth     float64          `json:"revenue_growth"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db:  db,
		now: time.Now,
	}
}

// GetDashboardStats summarizes accounts, catalog and sales. Revenue counts
// approved orders only.
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{OrdersByStatus: make(map[string]int64)}
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{s.db.Model(&models.User{}), &stats.TotalUsers},
		{s.db.Model(&models.User{}).Where("is_admin = ?", true), &stats.AdminUsers},
		{s.db.Model(&models.User{}).Where("created_at >= ?", monthStart), &stats.NewUsersThisMonth},
		{s.db.Model(&models.Product{}), &stats.TotalProducts},
		{s.db.Model(&models.Product{}).Where("active = ?", true), &stats.ActiveProducts},
		{s.db.Model(&models.Order{}), &stats.TotalOrders},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, internalError("failed to compute dashboard", err)
		}
	}

	var byStatus []struct {
		Status string
		Total  int64
	}
	if err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, internalError("failed to compute dashboard", err)
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Total
	}

	var lastMonthRevenue float64
	revenue := []struct {
		dest  *float64
		where string
		args  []interface{}
	}{
		{&stats.TotalRevenue, "status = ?", []interface{}{models.OrderStatusApproved}},
		{&stats.MonthlyRevenue, "status = ? AND created_at >= ?", []interface{}{models.OrderStatusApproved, monthStart}},
		{&lastMonthRevenue, "status = ? AND created_at >= ? AND created_at < ?", []interface{}{models.OrderStatusApproved, lastMonthStart, monthStart}},
	}
	for _, r := range revenue {
		if err := s.db.Model(&models.Order{}).
			Where(r.where, r.args...).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(r.dest).Error; err != nil {
			return nil, internalError("failed to compute dashboard", err)
		}
	}

	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	return stats, nil
}

// ListAuditLogs returns recorded admin mutations, newest first.
func (s *AdminService) ListAuditLogs(params utils.PaginationParams, resourceType string) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, internalError("failed to count audit logs", err)
	}

	logs := make([]models.AuditLog, 0)
	if err := utils.ApplyPagination(query.Order("created_at DESC, id DESC"), params).Find(&logs).Error; err != nil {
		return nil, 0, internalError("failed to list audit logs", err)
	}
	return logs, total, nil
}
