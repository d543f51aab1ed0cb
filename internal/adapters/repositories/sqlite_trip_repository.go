package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hos-trip-service/internal/domain"
)

// SQLite-backed implementation of the TripRepository port.
type SqliteTripRepository struct{ DB *sql.DB }

func NewSqliteTripRepository(db *sql.DB) *SqliteTripRepository {
	return &SqliteTripRepository{DB: db}
}

// Segment rows are stored as a JSON array per day; this is the stored shape.
type segmentRecord struct {
	Status  string    `json:"status"`
	Start   time.Time `json:"start_time"`
	End     time.Time `json:"end_time"`
	Minutes int       `json:"minutes"`
	Note    string    `json:"notes"`
}

// SaveTrip persists the trip and its daily logs in one transaction.
func (s *SqliteTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite trip repository: DB is nil")
	}
	if trip == nil || trip.Plan == nil {
		return 0, errors.New("save trip: trip and its plan must be non-nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save trip: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertTrip := `
	INSERT INTO trips (
		created_at,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_miles,
		total_driving_hours,
		total_days,
		estimated_days,
		num_fuel_stops,
		cycle_used_after,
		restart_needed,
		route_method
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	res, err := tx.ExecContext(ctx, insertTrip,
		trip.CreatedAt.Format(time.RFC3339),
		trip.CurrentLocation,
		trip.PickupLocation,
		trip.DropoffLocation,
		trip.CurrentCycleUsed,
		trip.TotalMiles,
		trip.TotalDrivingHours,
		trip.TotalDays,
		trip.Plan.EstimatedDays,
		trip.Plan.NumFuelStops,
		trip.Plan.CycleUsedAfter,
		boolToInt(trip.Plan.RestartNeeded),
		trip.RouteMethod,
	)
	if err != nil {
		return 0, fmt.Errorf("save trip: insert trips row: %w", err)
	}

	tripID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save trip: last insert id: %w", err)
	}

	insertLog := `
	INSERT INTO daily_logs (
		trip_id,
		day_number,
		date,
		start_at,
		end_at,
		segments,
		driving_minutes,
		on_duty_minutes,
		off_duty_minutes,
		remaining_drive_minutes,
		remaining_on_duty_minutes,
		cycle_minutes_remaining,
		is_restart
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	stmt, err := tx.PrepareContext(ctx, insertLog)
	if err != nil {
		return 0, fmt.Errorf("save trip: prepare daily_logs insert: %w", err)
	}
	defer stmt.Close()

	for _, dayLog := range trip.Plan.DailyLogs {
		records := make([]segmentRecord, 0, len(dayLog.Segments))
		for _, seg := range dayLog.Segments {
			records = append(records, segmentRecord{
				Status:  string(seg.Status),
				Start:   seg.Start,
				End:     seg.End,
				Minutes: seg.Minutes,
				Note:    seg.Note,
			})
		}

		segmentsJSON, err := json.Marshal(records)
		if err != nil {
			return 0, fmt.Errorf("save trip: marshal segments day=%d: %w", dayLog.DayNumber, err)
		}

		_, err = stmt.ExecContext(ctx,
			tripID,
			dayLog.DayNumber,
			dayLog.Date.Format(time.RFC3339),
			dayLog.StartAt.Format(time.RFC3339),
			dayLog.EndAt.Format(time.RFC3339),
			string(segmentsJSON),
			dayLog.DrivingMinutes,
			dayLog.OnDutyMinutes,
			dayLog.OffDutyMinutes,
			dayLog.RemainingDriveMinutes,
			dayLog.RemainingOnDutyMinutes,
			dayLog.CycleMinutesRemaining,
			boolToInt(dayLog.IsRestart),
		)
		if err != nil {
			return 0, fmt.Errorf("save trip: insert daily_logs day=%d: %w", dayLog.DayNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save trip: commit tx: %w", err)
	}

	return tripID, nil
}

// GetTrip retrieves one trip with its full daily-log sequence.
func (s *SqliteTripRepository) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		created_at,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_miles,
		total_driving_hours,
		total_days,
		estimated_days,
		num_fuel_stops,
		cycle_used_after,
		restart_needed,
		route_method
	FROM trips
	WHERE trip_id = ?;
	`

	trip, plan, err := scanTrip(s.DB.QueryRowContext(ctx, query, tripID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}

	logs, err := s.loadDailyLogs(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}

	plan.DailyLogs = logs
	plan.ActualDays = len(logs)
	trip.Plan = plan

	return trip, nil
}

// ListTrips retrieves the most recent trips, newest first, without logs.
func (s *SqliteTripRepository) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite trip repository: DB is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
	SELECT
		trip_id,
		created_at,
		current_location,
		pickup_location,
		dropoff_location,
		current_cycle_used,
		total_miles,
		total_driving_hours,
		total_days,
		estimated_days,
		num_fuel_stops,
		cycle_used_after,
		restart_needed,
		route_method
	FROM trips
	ORDER BY created_at DESC, trip_id DESC
	LIMIT ?;
	`

	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.Trip, 0, limit)
	for rows.Next() {
		trip, _, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (*domain.Trip, *domain.TripPlan, error) {
	var (
		trip          domain.Trip
		plan          domain.TripPlan
		createdAt     string
		restartNeeded int
	)

	err := row.Scan(
		&trip.TripID,
		&createdAt,
		&trip.CurrentLocation,
		&trip.PickupLocation,
		&trip.DropoffLocation,
		&trip.CurrentCycleUsed,
		&trip.TotalMiles,
		&trip.TotalDrivingHours,
		&trip.TotalDays,
		&plan.EstimatedDays,
		&plan.NumFuelStops,
		&plan.CycleUsedAfter,
		&restartNeeded,
		&trip.RouteMethod,
	)
	if err != nil {
		return nil, nil, err
	}

	trip.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, nil, fmt.Errorf("parse created_at: %w", err)
	}

	plan.TotalMiles = trip.TotalMiles
	plan.TotalDrivingHours = trip.TotalDrivingHours
	plan.CycleUsedBefore = trip.CurrentCycleUsed
	plan.RestartNeeded = restartNeeded != 0

	return &trip, &plan, nil
}

func (s *SqliteTripRepository) loadDailyLogs(ctx context.Context, tripID int64) ([]domain.DayLog, error) {
	query := `
	SELECT
		day_number,
		date,
		start_at,
		end_at,
		segments,
		driving_minutes,
		on_duty_minutes,
		off_duty_minutes,
		remaining_drive_minutes,
		remaining_on_duty_minutes,
		cycle_minutes_remaining,
		is_restart
	FROM daily_logs
	WHERE trip_id = ?
	ORDER BY day_number;
	`

	rows, err := s.DB.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("query daily_logs table: %w", err)
	}
	defer rows.Close()

	var logs []domain.DayLog
	for rows.Next() {
		var (
			dayLog       domain.DayLog
			date         string
			startAt      string
			endAt        string
			segmentsJSON string
			isRestart    int
		)

		err := rows.Scan(
			&dayLog.DayNumber,
			&date,
			&startAt,
			&endAt,
			&segmentsJSON,
			&dayLog.DrivingMinutes,
			&dayLog.OnDutyMinutes,
			&dayLog.OffDutyMinutes,
			&dayLog.RemainingDriveMinutes,
			&dayLog.RemainingOnDutyMinutes,
			&dayLog.CycleMinutesRemaining,
			&isRestart,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily_logs row: %w", err)
		}

		if dayLog.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("parse date day=%d: %w", dayLog.DayNumber, err)
		}
		if dayLog.StartAt, err = time.Parse(time.RFC3339, startAt); err != nil {
			return nil, fmt.Errorf("parse start_at day=%d: %w", dayLog.DayNumber, err)
		}
		if dayLog.EndAt, err = time.Parse(time.RFC3339, endAt); err != nil {
			return nil, fmt.Errorf("parse end_at day=%d: %w", dayLog.DayNumber, err)
		}

		var records []segmentRecord
		if err := json.Unmarshal([]byte(segmentsJSON), &records); err != nil {
			return nil, fmt.Errorf("unmarshal segments day=%d: %w", dayLog.DayNumber, err)
		}
		for _, r := range records {
			dayLog.Segments = append(dayLog.Segments, domain.Segment{
				Status:  domain.DutyStatus(r.Status),
				Start:   r.Start,
				End:     r.End,
				Minutes: r.Minutes,
				Note:    r.Note,
			})
		}

		dayLog.IsRestart = isRestart != 0
		logs = append(logs, dayLog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily_logs row iteration: %w", err)
	}

	return logs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
