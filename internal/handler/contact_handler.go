package handler

import (
	"context"

	"clinic-api/internal/model"
	"clinic-api/internal/validation"
)

func (h *Handler) SubmitContact(ctx context.Context, body []byte) (*Ack, error) {
	var c model.Contact
	if err := validation.Contact.Decode(body, &c); err != nil {
		return nil, validationFailed(err)
	}

	if err := h.store.CreateContact(ctx, &c); err != nil {
		h.log.ErrorContext(ctx, "create contact", "err", err)
		return nil, persistenceFailed(err)
	}
	return &Ack{Message: "Contact form submitted successfully."}, nil
}
