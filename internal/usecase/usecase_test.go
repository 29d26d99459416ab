package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/model"
	"github.com/Alexandros-Gialamas/TaxiApp-sub000/internal/validate"
)

// stubRepo counts repository calls and returns canned outcomes.
type stubRepo struct {
	estimateCalls int
	estimate      model.Estimate
	estimateErr   error

	confirmCalls int
	confirmOK    bool
	confirmErr   error

	saveCalls int
	saveErr   error

	localCalls int
	localErr   error
	localCh    chan []model.RideRecord

	historyCalls int
	history      model.HistoryResponse
	historyErr   error
}

func (s *stubRepo) GetEstimate(ctx context.Context, customerID, origin, destination string) (model.Estimate, error) {
	s.estimateCalls++
	return s.estimate, s.estimateErr
}

func (s *stubRepo) ConfirmRide(ctx context.Context, req model.ConfirmRequest) (bool, error) {
	s.confirmCalls++
	return s.confirmOK, s.confirmErr
}

func (s *stubRepo) SaveRideLocally(ctx context.Context, rec model.RideRecord) (model.RideRecord, error) {
	s.saveCalls++
	return rec, s.saveErr
}

func (s *stubRepo) LocalHistory(ctx context.Context, customerID string, driverID int64) (<-chan []model.RideRecord, error) {
	s.localCalls++
	if s.localErr != nil {
		return nil, s.localErr
	}
	return s.localCh, nil
}

func (s *stubRepo) RemoteHistory(ctx context.Context, customerID string, driverID int64) (model.HistoryResponse, error) {
	s.historyCalls++
	return s.history, s.historyErr
}

func TestGetEstimate_InvalidInputSkipsRepo(t *testing.T) {
	cases := []struct {
		name                             string
		customerID, origin, destination  string
		wantErr                          error
	}{
		{"blank customer", "", "Origin A", "Destination B", validate.ErrInvalidCustomerID},
		{"blank origin", "CT01", "  ", "Destination B", validate.ErrInvalidOrigin},
		{"blank destination", "CT01", "Origin A", "", validate.ErrInvalidDestination},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			res := NewGetEstimate(repo).Execute(context.Background(), tc.customerID, tc.origin, tc.destination)
			if !res.IsFailure() {
				t.Fatal("want failure result")
			}
			if !errors.Is(res.Err(), tc.wantErr) {
				t.Errorf("err = %v, want %v", res.Err(), tc.wantErr)
			}
			if repo.estimateCalls != 0 {
				t.Errorf("repo called %d times on invalid input", repo.estimateCalls)
			}
		})
	}
}

func TestGetEstimate_Success(t *testing.T) {
	repo := &stubRepo{estimate: model.Estimate{Distance: 3.2, Duration: "12 mins"}}
	res := NewGetEstimate(repo).Execute(context.Background(), "CT01", "Origin A", "Destination B")
	est, ok := res.Value()
	if !ok {
		t.Fatalf("want success, got err %v", res.Err())
	}
	if est.Distance != 3.2 || est.Duration != "12 mins" {
		t.Errorf("estimate = %+v", est)
	}
	if repo.estimateCalls != 1 {
		t.Errorf("repo calls = %d, want 1", repo.estimateCalls)
	}
}

func TestGetEstimate_RepoFailureBecomesResult(t *testing.T) {
	boom := errors.New("ride api unavailable")
	repo := &stubRepo{estimateErr: boom}
	res := NewGetEstimate(repo).Execute(context.Background(), "CT01", "Origin A", "Destination B")
	if !errors.Is(res.Err(), boom) {
		t.Errorf("err = %v, want %v", res.Err(), boom)
	}
}

func TestConfirmRide_DriverTooFarSkipsRepo(t *testing.T) {
	repo := &stubRepo{confirmOK: true}
	req := model.ConfirmRequest{CustomerID: "CT01", Distance: 2.0}
	opt := model.RideOption{ID: 3, Name: "James Bond"} // needs 10 km minimum

	res := NewConfirmRide(repo).Execute(context.Background(), req, opt)
	if !errors.Is(res.Err(), validate.ErrInvalidDistance) {
		t.Errorf("err = %v, want %v", res.Err(), validate.ErrInvalidDistance)
	}
	if repo.confirmCalls != 0 {
		t.Errorf("repo called %d times on rejected option", repo.confirmCalls)
	}
}

func TestConfirmRide_Success(t *testing.T) {
	repo := &stubRepo{confirmOK: true}
	req := model.ConfirmRequest{CustomerID: "CT01", Distance: 3.2}
	opt := model.RideOption{ID: 1, Name: "Homer Simpson"}

	res := NewConfirmRide(repo).Execute(context.Background(), req, opt)
	if ok, _ := res.Value(); !ok {
		t.Errorf("want confirmed, got %+v", res)
	}
	if repo.confirmCalls != 1 {
		t.Errorf("repo calls = %d, want 1", repo.confirmCalls)
	}
}

func TestSaveRide(t *testing.T) {
	repo := &stubRepo{}
	if res := NewSaveRide(repo).Execute(context.Background(), model.RideRecord{CustomerID: "CT01"}); !res.IsSuccess() {
		t.Errorf("want success, got err %v", res.Err())
	}

	boom := errors.New("store full")
	repo = &stubRepo{saveErr: boom}
	if res := NewSaveRide(repo).Execute(context.Background(), model.RideRecord{CustomerID: "CT01"}); !errors.Is(res.Err(), boom) {
		t.Errorf("err = %v, want %v", res.Err(), boom)
	}
}

func TestLocalHistory_StreamsSnapshots(t *testing.T) {
	src := make(chan []model.RideRecord, 2)
	repo := &stubRepo{localCh: src}

	out := NewLocalHistory(repo).Execute(context.Background(), "CT01", 0)

	src <- []model.RideRecord{{ID: "a"}}
	res := <-out
	recs, ok := res.Value()
	if !ok || len(recs) != 1 || recs[0].ID != "a" {
		t.Errorf("first snapshot = %+v", res)
	}

	src <- []model.RideRecord{{ID: "a"}, {ID: "b"}}
	close(src)
	res = <-out
	if recs, _ := res.Value(); len(recs) != 2 {
		t.Errorf("second snapshot = %+v", res)
	}
	if _, open := <-out; open {
		t.Error("stream must close when the source closes")
	}
}

func TestLocalHistory_BlankCustomerFailsWithoutRepo(t *testing.T) {
	repo := &stubRepo{}
	out := NewLocalHistory(repo).Execute(context.Background(), "", 0)
	res, open := <-out
	if !open || !errors.Is(res.Err(), validate.ErrInvalidCustomerID) {
		t.Errorf("res = %+v, open = %v", res, open)
	}
	if _, open := <-out; open {
		t.Error("stream must close after the validation failure")
	}
	if repo.localCalls != 0 {
		t.Errorf("repo calls = %d, want 0", repo.localCalls)
	}
}

func TestRemoteHistory(t *testing.T) {
	repo := &stubRepo{history: model.HistoryResponse{CustomerID: "CT01", Rides: []model.HistoryEntry{{ID: "1"}}}}
	res := NewRemoteHistory(repo).Execute(context.Background(), "CT01", 0)
	resp, ok := res.Value()
	if !ok || len(resp.Rides) != 1 {
		t.Errorf("res = %+v", res)
	}

	res = NewRemoteHistory(repo).Execute(context.Background(), "  ", 0)
	if !errors.Is(res.Err(), validate.ErrInvalidCustomerID) {
		t.Errorf("err = %v, want %v", res.Err(), validate.ErrInvalidCustomerID)
	}
}
