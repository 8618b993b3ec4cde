package services

import (
	"context"
	"time"

	"github.com/anjiri1684/appointment_booking/locales"
	"github.com/anjiri1684/appointment_booking/models"
	"gorm.io/gorm"
)

const chartDays = 14

type DashboardStats struct {
	All         int64 `json:"all"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Cancelled   int64 `json:"cancelled"`
	Rejected    int64 `json:"rejected"`
	Services    int64 `json:"services"`
	SlotsActive int64 `json:"slots_active"`
}

type Chart struct {
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

type Dashboard struct {
	Stats       DashboardStats       `json:"stats"`
	Pending     []models.Reservation `json:"pending"`
	StatusChart Chart                `json:"chart_status"`
	DailyChart  Chart                `json:"chart_daily"`
}

type DashboardService struct {
	db   *gorm.DB
	opts Options
	lang string
}

func NewDashboardService(db *gorm.DB, opts Options, lang string) *DashboardService {
	return &DashboardService{db: db, opts: opts.withDefaults(), lang: lang}
}

func (s *DashboardService) Build(ctx context.Context) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	d := &Dashboard{}

	perStatus := map[models.ReservationStatus]*int64{
		models.ReservationPending:   &d.Stats.Pending,
		models.ReservationApproved:  &d.Stats.Approved,
		models.ReservationCancelled: &d.Stats.Cancelled,
		models.ReservationRejected:  &d.Stats.Rejected,
	}
	var rows []struct {
		Status models.ReservationStatus
		Count  int64
	}
	if err := db.Model(&models.Reservation{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		if dst, ok := perStatus[row.Status]; ok {
			*dst = row.Count
		}
		d.Stats.All += row.Count
	}

	if err := db.Model(&models.Service{}).Count(&d.Stats.Services).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.TimeSlot{}).Where("is_active = ?", true).Count(&d.Stats.SlotsActive).Error; err != nil {
		return nil, err
	}

	err := db.Preload("User").Preload("Service").Preload("Slot").
		Where("status = ?", models.ReservationPending).
		Order("created_at ASC").
		Find(&d.Pending).Error
	if err != nil {
		return nil, err
	}

	for _, st := range models.AllStatuses {
		d.StatusChart.Labels = append(d.StatusChart.Labels, locales.T(s.lang, "status_"+string(st)))
		d.StatusChart.Values = append(d.StatusChart.Values, *perStatus[st])
	}

	daily, err := s.dailyChart(db)
	if err != nil {
		return nil, err
	}
	d.DailyChart = daily
	return d, nil
}

// dailyChart counts reservations created on each of the last 14 local days,
// today included, with empty days reported as zero.
func (s *DashboardService) dailyChart(db *gorm.DB) (Chart, error) {
	today, _ := s.opts.dayBounds(s.opts.now())
	since := today.In(s.opts.Location).AddDate(0, 0, -(chartDays - 1))

	var created []time.Time
	err := db.Model(&models.Reservation{}).
		Where("created_at >= ?", since.UTC()).
		Pluck("created_at", &created).Error
	if err != nil {
		return Chart{}, err
	}

	counts := make(map[string]int64, chartDays)
	for _, t := range created {
		counts[t.In(s.opts.Location).Format(dateLayout)]++
	}

	chart := Chart{
		Labels: make([]string, 0, chartDays),
		Values: make([]int64, 0, chartDays),
	}
	for i := range chartDays {
		day := since.AddDate(0, 0, i)
		chart.Labels = append(chart.Labels, day.Format("02.01"))
		chart.Values = append(chart.Values, counts[day.Format(dateLayout)])
	}
	return chart, nil
}
