package ledger

import (
	"context"
	"fmt"
	"time"

	"equipment-tracker/internal/entities"
	"equipment-tracker/pkg/constants"
	apperrors "equipment-tracker/pkg/errors"
	"equipment-tracker/pkg/utils"
)

type NewEquipmentRequest struct {
	EquipmentID   string
	RequesterID   string
	RequesterName string
	RequestDate   time.Time
	Reason        string
	Notes         string
}

type RequestFilter struct {
	EquipmentID string
	RequesterID string
	Status      constants.RequestStatus
}

func (l *Ledger) RequestEquipment(ctx context.Context, in NewEquipmentRequest) (entities.EquipmentRequest, error) {
	var request entities.EquipmentRequest
	err := l.run(ctx, func(t *tx) error {
		if t.equipmentIndex(in.EquipmentID) < 0 {
			return fmt.Errorf("equipment %s: %w", in.EquipmentID, apperrors.ErrNotFound)
		}
		requestDate := in.RequestDate
		if requestDate.IsZero() {
			requestDate = t.now
		}
		request = entities.EquipmentRequest{
			ID:            t.newID(),
			EquipmentID:   in.EquipmentID,
			RequesterID:   in.RequesterID,
			RequesterName: in.RequesterName,
			Status:        constants.RequestPending,
			RequestDate:   requestDate,
			Reason:        in.Reason,
			Notes:         in.Notes,
		}
		own(t, KeyEquipmentRequests, &t.st.requests)
		t.st.requests = append(t.st.requests, request)
		t.toast("Request Submitted", "Your equipment request has been submitted successfully.")
		return nil
	})
	return request, err
}

// UpdateRequestStatus moves a request along pending, approved, denied and
// completed. Denied and completed are final. Approval notifies the requester
// once, on the actual change into approved.
func (l *Ledger) UpdateRequestStatus(ctx context.Context, id string, status constants.RequestStatus, notes string) (entities.EquipmentRequest, error) {
	var request entities.EquipmentRequest
	err := l.run(ctx,
		setRequestStatus(id, status, notes, &request),
		func(t *tx) error {
			t.toast("Request Status Updated", fmt.Sprintf("Request status changed to %s.", status))
			return nil
		},
	)
	return request, err
}

func setRequestStatus(id string, status constants.RequestStatus, notes string, out *entities.EquipmentRequest) effect {
	return func(t *tx) error {
		i := t.requestIndex(id)
		if i < 0 {
			return fmt.Errorf("equipment request %s: %w", id, apperrors.ErrNotFound)
		}
		request := t.st.requests[i]
		changed := request.Status != status
		if changed && constants.IsFinalRequestStatus(request.Status) {
			return fmt.Errorf("request %s is %s: %w", id, request.Status, apperrors.ErrInvalidTransition)
		}

		request.Status = status
		request.Notes = appendNotes(request.Notes, notes)
		if changed {
			switch status {
			case constants.RequestApproved:
				request.ApprovedDate = utils.ToPtr(t.now)
			case constants.RequestCompleted:
				request.CompletedDate = utils.ToPtr(t.now)
			}
		}
		t.putRequest(i, request)
		*out = request.Clone()

		if changed && status == constants.RequestApproved {
			return t.apply(notifyApproval(request))
		}
		return nil
	}
}

func notifyApproval(request entities.EquipmentRequest) effect {
	return func(t *tx) error {
		i := t.equipmentIndex(request.EquipmentID)
		if i < 0 {
			return nil
		}
		item := t.st.equipment[i]
		return t.apply(createNotification(NewNotification{
			UserID:             request.RequesterID,
			Title:              "Request Approved",
			Message:            fmt.Sprintf("Your request for %s has been approved.", item.Name),
			Type:               constants.NotificationRequestApproved,
			RelatedEquipmentID: utils.ToPtr(item.ID),
		}, nil))
	}
}

func (l *Ledger) ListRequests(filter RequestFilter) []entities.EquipmentRequest {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := []entities.EquipmentRequest{}
	for _, r := range l.st.requests {
		if filter.EquipmentID != "" && r.EquipmentID != filter.EquipmentID {
			continue
		}
		if filter.RequesterID != "" && r.RequesterID != filter.RequesterID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, r.Clone())
	}
	return out
}
