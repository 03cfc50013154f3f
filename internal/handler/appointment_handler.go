package handler

import (
	"context"

	"clinic-api/internal/model"
	"clinic-api/internal/validation"
)

// Book stores an appointment as submitted. There is no slot conflict check.
func (h *Handler) Book(ctx context.Context, body []byte) (*Ack, error) {
	var apt model.Appointment
	if err := validation.Appointment.Decode(body, &apt); err != nil {
		return nil, &Error{
			Kind:   KindInvalidAppointmentData,
			Detail: "Invalid appointment data: " + err.Error(),
			Err:    err,
		}
	}

	if err := h.store.CreateAppointment(ctx, &apt); err != nil {
		h.log.ErrorContext(ctx, "create appointment", "err", err)
		return nil, persistenceFailed(err)
	}

	h.log.InfoContext(ctx, "appointment booked", "appointment_id", apt.ID, "doctor_id", apt.DoctorID)
	return &Ack{Message: "Appointment created successfully."}, nil
}

// ListByEmail returns the appointments booked under email in booking order.
func (h *Handler) ListByEmail(ctx context.Context, email string) ([]model.Appointment, error) {
	if err := validation.CheckEmail(email); err != nil {
		return nil, validationFailed(err)
	}

	apts, err := h.store.AppointmentsByEmail(ctx, email)
	if err != nil {
		h.log.ErrorContext(ctx, "list appointments", "err", err)
		return nil, persistenceFailed(err)
	}
	return apts, nil
}
