package store

import (
	"context"
	"fmt"

	"clinic-api/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	doc, err := toDocument(a)
	if err != nil {
		return err
	}
	id, err := s.db.InsertOne(ctx, Appointments, doc)
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	a.ID = id
	return nil
}

// AppointmentsByEmail returns every appointment booked under email, oldest
// first. The result is never nil.
func (s *Store) AppointmentsByEmail(ctx context.Context, email string) ([]model.Appointment, error) {
	docs, err := s.db.FindMany(ctx, Appointments, Filter{"email": email})
	if err != nil {
		return nil, fmt.Errorf("appointments by email: %w", err)
	}

	out := make([]model.Appointment, len(docs))
	for i, doc := range docs {
		if err := fromDocument(doc, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
