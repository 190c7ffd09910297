package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/export"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/queue"
	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/utils"
)

// EventPublisher receives seat assignment changes after they are committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.SeatEvent) error
}

const labelSize = 256

type SeatService struct {
	store     repository.Store
	events    EventPublisher
	log       *zap.Logger
	now       func() time.Time
	labelBase string
}

// NewSeatService wires the seat service. events may be nil; labelBase is
// the URL prefix encoded into seat QR labels.
func NewSeatService(store repository.Store, events EventPublisher, labelBase string, log *zap.Logger) *SeatService {
	return &SeatService{
		store:     store,
		events:    events,
		log:       log,
		now:       repository.SystemClock,
		labelBase: strings.TrimRight(labelBase, "/"),
	}
}

// WithClock replaces the time source used for assignment dates.
func (s *SeatService) WithClock(now func() time.Time) *SeatService {
	s.now = now
	return s
}

func (s *SeatService) List(ctx context.Context) ([]dto.SeatDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.SeatDTO, error) {
		list, err := uow.Seats().List(ctx)
		if err != nil {
			return nil, err
		}
		return seatsToDTO(ctx, uow, list)
	})
}

func (s *SeatService) ListByLayout(ctx context.Context, layoutID uint64) ([]dto.SeatDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.SeatDTO, error) {
		list, err := uow.Seats().ListByLayout(ctx, layoutID)
		if err != nil {
			return nil, err
		}
		return seatsToDTO(ctx, uow, list)
	})
}

func (s *SeatService) Get(ctx context.Context, id uint64) (dto.SeatDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.SeatDTO, error) {
		return loadSeat(ctx, uow, id)
	})
}

// Create adds an unassigned seat. Occupied cannot be set without an
// assignee, so it is rejected here.
func (s *SeatService) Create(ctx context.Context, in dto.SeatDTO) (dto.SeatDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.SeatDTO, error) {
		if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
			return dto.SeatDTO{}, err
		}
		seat, err := mapping.SeatFromDTO(in)
		if err != nil {
			return dto.SeatDTO{}, newError(ErrValidation, "%s", err.Error())
		}
		if seat.Status == model.SeatOccupied {
			return dto.SeatDTO{}, newError(ErrValidation, "Use the assign endpoint to occupy a seat")
		}
		if err := uow.Seats().Add(ctx, &seat); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		return mapping.SeatToDTO(seat, nil), nil
	})
}

// Update overlays position, identifier, status and properties. The
// assigned user is kept; an occupied seat must stay Occupied and a free one
// cannot become Occupied.
func (s *SeatService) Update(ctx context.Context, id uint64, in dto.SeatDTO) (dto.SeatDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.SeatDTO, error) {
		seat, err := uow.Seats().Get(ctx, id)
		if err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		if in.LayoutID != seat.LayoutID {
			if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
				return dto.SeatDTO{}, err
			}
		}
		if err := mapping.ApplySeat(seat, in); err != nil {
			return dto.SeatDTO{}, newError(ErrValidation, "%s", err.Error())
		}
		assigned := seat.AssignedUserID != nil
		if assigned != (seat.Status == model.SeatOccupied) {
			if assigned {
				return dto.SeatDTO{}, newError(ErrValidation, "Unassign the seat before changing its status")
			}
			return dto.SeatDTO{}, newError(ErrValidation, "Use the assign endpoint to occupy a seat")
		}
		if err := uow.Seats().Update(ctx, seat); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		return loadSeat(ctx, uow, id)
	})
}

// Delete removes the seat and its assignment history.
func (s *SeatService) Delete(ctx context.Context, id uint64) bool {
	return deleteIn(ctx, s.store, s.log, "seat", id, func(uow repository.UnitOfWork) error {
		return uow.Seats().Delete(ctx, id)
	})
}

// Assign gives seatID to userID, closing the current occupant's assignment.
// Assigning the current occupant again changes nothing.
func (s *SeatService) Assign(ctx context.Context, seatID uint64, userID string) (dto.SeatDTO, error) {
	var ev *queue.SeatEvent
	out, err := inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.SeatDTO, error) {
		seat, err := uow.Seats().Get(ctx, seatID)
		if err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		if seat.AssignedUserID != nil && *seat.AssignedUserID == userID {
			return loadSeat(ctx, uow, seatID)
		}
		if _, err := uow.Users().Get(ctx, userID); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "User")
		}
		held, err := uow.Seats().GetByAssignedUser(ctx, userID)
		switch {
		case err == nil && held.ID != seatID:
			return dto.SeatDTO{}, newError(ErrConflict, "User already occupies seat %s", held.Identifier)
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return dto.SeatDTO{}, err
		}

		now := s.now()
		var previous string
		if seat.AssignedUserID != nil {
			previous = *seat.AssignedUserID
		}
		if err := closeOpen(ctx, uow, seatID, now); err != nil {
			return dto.SeatDTO{}, err
		}
		if err := uow.Assignments().Add(ctx, &model.SeatAssignment{SeatID: seatID, UserID: userID, StartDate: now}); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat assignment")
		}
		seat.AssignedUserID = &userID
		seat.Status = model.SeatOccupied
		if err := uow.Seats().Update(ctx, seat); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		ev = &queue.SeatEvent{
			Type:           queue.EventSeatAssigned,
			SeatID:         seat.ID,
			SeatIdentifier: seat.Identifier,
			LayoutID:       seat.LayoutID,
			UserID:         userID,
			PreviousUserID: previous,
			OccurredAt:     now,
		}
		return loadSeat(ctx, uow, seatID)
	})
	if err != nil {
		return dto.SeatDTO{}, err
	}
	s.publish(ctx, ev)
	return out, nil
}

// Unassign frees the seat. An unassigned seat is returned unchanged.
func (s *SeatService) Unassign(ctx context.Context, seatID uint64) (dto.SeatDTO, error) {
	var ev *queue.SeatEvent
	out, err := inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.SeatDTO, error) {
		seat, err := uow.Seats().Get(ctx, seatID)
		if err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		if seat.AssignedUserID == nil {
			return mapping.SeatToDTO(*seat, nil), nil
		}
		now := s.now()
		previous := *seat.AssignedUserID
		if err := closeOpen(ctx, uow, seatID, now); err != nil {
			return dto.SeatDTO{}, err
		}
		seat.AssignedUserID = nil
		seat.Status = model.SeatAvailable
		if err := uow.Seats().Update(ctx, seat); err != nil {
			return dto.SeatDTO{}, fromRepo(err, "Seat")
		}
		ev = &queue.SeatEvent{
			Type:           queue.EventSeatUnassigned,
			SeatID:         seat.ID,
			SeatIdentifier: seat.Identifier,
			LayoutID:       seat.LayoutID,
			PreviousUserID: previous,
			OccurredAt:     now,
		}
		return mapping.SeatToDTO(*seat, nil), nil
	})
	if err != nil {
		return dto.SeatDTO{}, err
	}
	s.publish(ctx, ev)
	return out, nil
}

// History lists the seat's assignments, newest first. An unknown seat has
// no history and yields an empty list.
func (s *SeatService) History(ctx context.Context, seatID uint64) ([]dto.SeatAssignmentDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.SeatAssignmentDTO, error) {
		list, err := uow.Assignments().HistoryForSeat(ctx, seatID)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.AssignmentToDTO), nil
	})
}

// ExportLayoutRoster renders the layout's seats and occupants as an XLSX
// workbook.
func (s *SeatService) ExportLayoutRoster(ctx context.Context, layoutID uint64) ([]byte, error) {
	type roster struct {
		layout dto.LayoutDTO
		seats  []dto.SeatDTO
	}
	r, err := inUnit(ctx, s.store, func(uow repository.UnitOfWork) (roster, error) {
		l, err := uow.Layouts().Get(ctx, layoutID)
		if err != nil {
			return roster{}, fromRepo(err, "Layout")
		}
		list, err := uow.Seats().ListByLayout(ctx, layoutID)
		if err != nil {
			return roster{}, err
		}
		seats, err := seatsToDTO(ctx, uow, list)
		if err != nil {
			return roster{}, err
		}
		return roster{layout: mapping.LayoutToDTO(*l), seats: seats}, nil
	})
	if err != nil {
		return nil, err
	}
	return export.SeatRoster(r.layout, r.seats)
}

// Label returns a PNG QR code linking to the seat.
func (s *SeatService) Label(ctx context.Context, seatID uint64) ([]byte, error) {
	if _, err := s.Get(ctx, seatID); err != nil {
		return nil, err
	}
	return utils.QRCodePNG(fmt.Sprintf("%s/seats/%d", s.labelBase, seatID), labelSize)
}

func (s *SeatService) publish(ctx context.Context, ev *queue.SeatEvent) {
	if ev == nil || s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, *ev); err != nil {
		s.log.Warn("seat event not published",
			zap.String("type", ev.Type), zap.Uint64("seat_id", ev.SeatID), zap.Error(err))
	}
}

// closeOpen ends the seat's open assignment, if any.
func closeOpen(ctx context.Context, uow repository.UnitOfWork, seatID uint64, at time.Time) error {
	open, err := uow.Assignments().OpenForSeat(ctx, seatID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	open.EndDate = &at
	return uow.Assignments().Update(ctx, open)
}

func loadSeat(ctx context.Context, uow repository.UnitOfWork, id uint64) (dto.SeatDTO, error) {
	seat, err := uow.Seats().Get(ctx, id)
	if err != nil {
		return dto.SeatDTO{}, fromRepo(err, "Seat")
	}
	assignee, err := assigneeOf(ctx, uow, *seat)
	if err != nil {
		return dto.SeatDTO{}, err
	}
	return mapping.SeatToDTO(*seat, assignee), nil
}

func seatsToDTO(ctx context.Context, uow repository.UnitOfWork, seats []model.Seat) ([]dto.SeatDTO, error) {
	out := make([]dto.SeatDTO, 0, len(seats))
	for _, seat := range seats {
		assignee, err := assigneeOf(ctx, uow, seat)
		if err != nil {
			return nil, err
		}
		out = append(out, mapping.SeatToDTO(seat, assignee))
	}
	return out, nil
}

func assigneeOf(ctx context.Context, uow repository.UnitOfWork, seat model.Seat) (*model.User, error) {
	if seat.AssignedUserID == nil {
		return nil, nil
	}
	u, err := uow.Users().Get(ctx, *seat.AssignedUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}
