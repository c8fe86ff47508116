package analytics

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Repository defines the analytics repository interface
type Repository interface {
	GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error)
	GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
	GetTopEvents(ctx context.Context, limit int) ([]EventPerformance, error)
	GetHallOccupancy(ctx context.Context) ([]HallOccupancy, error)
	GetRevenueBreakdown(ctx context.Context) (*RevenueBreakdown, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetDashboardAnalytics(ctx context.Context) (*DashboardAnalytics, error) {
	overview, err := r.GetOverviewMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview metrics: %w", err)
	}

	topEvents, err := r.GetTopEvents(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get top events: %w", err)
	}

	dailyStats, err := r.GetDailyBookingStats(ctx, 30)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	hallOccupancy, err := r.GetHallOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get hall occupancy: %w", err)
	}

	return &DashboardAnalytics{
		Overview:      *overview,
		TopEvents:     topEvents,
		DailyStats:    dailyStats,
		HallOccupancy: hallOccupancy,
	}, nil
}

func (r *repository) GetOverviewMetrics(ctx context.Context) (*OverviewMetrics, error) {
	var metrics OverviewMetrics
	db := r.db.WithContext(ctx)

	var totalEvents int64
	if err := db.Table("events").Count(&totalEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	metrics.TotalEvents = int(totalEvents)

	var activeEvents int64
	if err := db.Table("events").Where("status = ?", "active").Count(&activeEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count active events: %w", err)
	}
	metrics.ActiveEvents = int(activeEvents)

	var confirmedBookings int64
	if err := db.Table("bookings").Where("status = ?", "confirmed").Count(&confirmedBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	metrics.TotalBookings = int(confirmedBookings)

	err := db.Table("bookings").
		Where("status = ?", "confirmed").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&metrics.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total revenue: %w", err)
	}

	var seatsSold int64
	err = db.Table("seat_claims sc").
		Joins("JOIN bookings b ON b.id = sc.booking_id").
		Where("b.status = ? AND sc.released_at IS NULL", "confirmed").
		Count(&seatsSold).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count seats sold: %w", err)
	}
	metrics.SeatsSold = int(seatsSold)

	var totalCustomers int64
	err = db.Table("bookings").
		Where("status = ?", "confirmed").
		Select("COUNT(DISTINCT LOWER(customer_email))").
		Scan(&totalCustomers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	metrics.TotalCustomers = int(totalCustomers)

	var allBookings, cancelledBookings int64
	db.Table("bookings").Count(&allBookings)
	db.Table("bookings").Where("status = ?", "cancelled").Count(&cancelledBookings)
	if allBookings > 0 {
		metrics.CancellationRate = float64(cancelledBookings) / float64(allBookings) * 100
	}

	// Revenue growth: last 30 days vs the 30 days before that
	var currentRevenue, previousRevenue float64
	currentStart := time.Now().AddDate(0, 0, -30)
	previousStart := time.Now().AddDate(0, 0, -60)

	db.Table("bookings").
		Where("status = ? AND created_at >= ?", "confirmed", currentStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&currentRevenue)

	db.Table("bookings").
		Where("status = ? AND created_at >= ? AND created_at < ?", "confirmed", previousStart, currentStart).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&previousRevenue)

	if previousRevenue > 0 {
		metrics.RevenueGrowth = ((currentRevenue - previousRevenue) / previousRevenue) * 100
	}

	return &metrics, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	var stats []DailyBookingStats
	since := time.Now().AddDate(0, 0, -days)
	db := r.db.WithContext(ctx)

	err := db.Table("bookings").
		Select(`DATE(created_at) as date,
			COUNT(id) as total_bookings,
			COALESCE(SUM(total_amount), 0) as revenue`).
		Where("status = ? AND created_at >= ?", "confirmed", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily booking stats: %w", err)
	}

	// Seats sold per day, aggregated separately so booking revenue is not
	// multiplied by the claim join
	type seatRow struct {
		Date      string
		SeatsSold int
	}
	var seatRows []seatRow
	err = db.Table("seat_claims sc").
		Select("DATE(b.created_at) as date, COUNT(sc.id) as seats_sold").
		Joins("JOIN bookings b ON b.id = sc.booking_id").
		Where("b.status = ? AND b.created_at >= ? AND sc.released_at IS NULL", "confirmed", since).
		Group("DATE(b.created_at)").
		Scan(&seatRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily seat stats: %w", err)
	}

	seatsByDate := make(map[string]int, len(seatRows))
	for _, row := range seatRows {
		seatsByDate[row.Date] = row.SeatsSold
	}
	for i := range stats {
		stats[i].SeatsSold = seatsByDate[stats[i].Date]
	}

	return stats, nil
}

func (r *repository) GetTopEvents(ctx context.Context, limit int) ([]EventPerformance, error) {
	var events []EventPerformance

	err := r.db.WithContext(ctx).Table("events e").
		Select(`e.id as event_id,
			e.title as event_title,
			e.event_type as event_type,
			COUNT(DISTINCT b.id) as booking_count,
			COUNT(sc.id) as seats_sold,
			COALESCE(SUM(sc.price), 0) as revenue,
			CASE WHEN e.total_seats > 0 THEN COUNT(sc.id)::float / e.total_seats ELSE 0 END as occupancy`).
		Joins("LEFT JOIN bookings b ON b.event_id = e.id AND b.status = 'confirmed'").
		Joins("LEFT JOIN seat_claims sc ON sc.booking_id = b.id AND sc.released_at IS NULL").
		Group("e.id, e.title, e.event_type, e.total_seats").
		Order("revenue DESC").
		Limit(limit).
		Scan(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get event performance: %w", err)
	}

	return events, nil
}

func (r *repository) GetHallOccupancy(ctx context.Context) ([]HallOccupancy, error) {
	var occupancy []HallOccupancy
	db := r.db.WithContext(ctx)

	err := db.Table("halls h").
		Select(`h.id as hall_id,
			h.name as hall_name,
			h.type as hall_type,
			COUNT(e.id) as event_count,
			COALESCE(SUM(e.total_seats), 0) as total_seats`).
		Joins("LEFT JOIN events e ON e.hall_id = h.id AND e.status = 'active'").
		Group("h.id, h.name, h.type").
		Scan(&occupancy).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get hall occupancy: %w", err)
	}

	type soldRow struct {
		HallID    string
		SeatsSold int
	}
	var soldRows []soldRow
	err = db.Table("seat_claims sc").
		Select("e.hall_id as hall_id, COUNT(sc.id) as seats_sold").
		Joins("JOIN bookings b ON b.id = sc.booking_id").
		Joins("JOIN events e ON e.id = b.event_id").
		Where("b.status = ? AND e.status = ? AND sc.released_at IS NULL", "confirmed", "active").
		Group("e.hall_id").
		Scan(&soldRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get hall seat sales: %w", err)
	}

	soldByHall := make(map[string]int, len(soldRows))
	for _, row := range soldRows {
		soldByHall[row.HallID] = row.SeatsSold
	}
	for i := range occupancy {
		occupancy[i].SeatsSold = soldByHall[occupancy[i].HallID]
		if occupancy[i].TotalSeats > 0 {
			occupancy[i].Occupancy = float64(occupancy[i].SeatsSold) / float64(occupancy[i].TotalSeats)
		}
	}

	return occupancy, nil
}

func (r *repository) GetRevenueBreakdown(ctx context.Context) (*RevenueBreakdown, error) {
	breakdown := &RevenueBreakdown{
		ByEventType:     make(map[string]float64),
		BySeatType:      make(map[string]float64),
		ByPaymentMethod: make(map[string]float64),
	}
	db := r.db.WithContext(ctx)

	err := db.Table("bookings").
		Where("status = ?", "confirmed").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&breakdown.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to calculate total revenue: %w", err)
	}

	type bucket struct {
		Key     string
		Revenue float64
	}

	var byEventType []bucket
	err = db.Table("bookings").
		Select("event_type as key, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status = ?", "confirmed").
		Group("event_type").
		Scan(&byEventType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to break down revenue by event type: %w", err)
	}
	for _, b := range byEventType {
		breakdown.ByEventType[b.Key] = b.Revenue
	}

	var bySeatType []bucket
	err = db.Table("bookings").
		Select("seat_type as key, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status = ?", "confirmed").
		Group("seat_type").
		Scan(&bySeatType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to break down revenue by seat type: %w", err)
	}
	for _, b := range bySeatType {
		breakdown.BySeatType[b.Key] = b.Revenue
	}

	var byPaymentMethod []bucket
	err = db.Table("bookings").
		Select("payment_method as key, COALESCE(SUM(total_amount), 0) as revenue").
		Where("status = ?", "confirmed").
		Group("payment_method").
		Scan(&byPaymentMethod).Error
	if err != nil {
		return nil, fmt.Errorf("failed to break down revenue by payment method: %w", err)
	}
	for _, b := range byPaymentMethod {
		breakdown.ByPaymentMethod[b.Key] = b.Revenue
	}

	return breakdown, nil
}
