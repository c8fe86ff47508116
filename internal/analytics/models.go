package analytics

// Dashboard & Overview Models

type DashboardAnalytics struct {
	Overview      OverviewMetrics     `json:"overview"`
	TopEvents     []EventPerformance  `json:"top_events"`
	DailyStats    []DailyBookingStats `json:"daily_stats"`
	HallOccupancy []HallOccupancy     `json:"hall_occupancy"`
}

type OverviewMetrics struct {
	TotalEvents      int     `json:"total_events"`
	ActiveEvents     int     `json:"active_events"`
	TotalBookings    int     `json:"total_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	SeatsSold        int     `json:"seats_sold"`
	TotalCustomers   int     `json:"total_customers"`
	CancellationRate float64 `json:"cancellation_rate"`
	RevenueGrowth    float64 `json:"revenue_growth"`
}

type DailyBookingStats struct {
	Date          string  `json:"date"`
	TotalBookings int     `json:"total_bookings"`
	SeatsSold     int     `json:"seats_sold"`
	Revenue       float64 `json:"revenue"`
}

type EventPerformance struct {
	EventID      string  `json:"event_id"`
	EventTitle   string  `json:"event_title"`
	EventType    string  `json:"event_type"`
	BookingCount int     `json:"booking_count"`
	SeatsSold    int     `json:"seats_sold"`
	Revenue      float64 `json:"revenue"`
	Occupancy    float64 `json:"occupancy"`
}

type HallOccupancy struct {
	HallID     string  `json:"hall_id"`
	HallName   string  `json:"hall_name"`
	HallType   string  `json:"hall_type"`
	EventCount int     `json:"event_count"`
	TotalSeats int     `json:"total_seats"`
	SeatsSold  int     `json:"seats_sold"`
	Occupancy  float64 `json:"occupancy"`
}

type RevenueBreakdown struct {
	TotalRevenue    float64            `json:"total_revenue"`
	ByEventType     map[string]float64 `json:"by_event_type"`
	BySeatType      map[string]float64 `json:"by_seat_type"`
	ByPaymentMethod map[string]float64 `json:"by_payment_method"`
}
