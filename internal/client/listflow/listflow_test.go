package listflow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parshpawar/ezoCodingTask/internal/client/gateway"
	"github.com/parshpawar/ezoCodingTask/internal/models"
)

// fakeSource drives fetch results and lets a test hold a fetch in flight.
type fakeSource struct {
	mu      sync.Mutex
	calls   int
	release chan struct{}
	records []models.Record
	err     error
}

func (s *fakeSource) fetch(ctx context.Context) ([]models.Record, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.release != nil {
		<-s.release
	}
	return s.records, s.err
}

func (s *fakeSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleRecords() []models.Record {
	return []models.Record{
		{ID: "r1", Name: "Ada Lovelace"},
		{ID: "r2", Name: "Alan Turing"},
	}
}

func TestLoad_Success(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)

	f.Load(context.Background())

	st := f.State()
	require.False(t, st.Loading)
	require.Len(t, st.Records, 2)
	require.False(t, st.Empty())
	require.Empty(t, st.FetchError)
}

func TestLoad_FailureRaisesEmptySignal(t *testing.T) {
	src := &fakeSource{err: &gateway.Error{Kind: gateway.KindNetwork}}
	f := New(src.fetch, nil, nil)

	f.Load(context.Background())

	st := f.State()
	require.False(t, st.Loading)
	require.Empty(t, st.Records)
	require.True(t, st.Empty(), "empty signal must be raised, distinct from loading")
	require.NotEmpty(t, st.FetchError)
}

func TestLoad_RunsOnce(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)

	f.Load(context.Background())
	f.Load(context.Background())
	require.Equal(t, 1, src.callCount())
}

func TestEmpty_DistinctFromLoading(t *testing.T) {
	src := &fakeSource{release: make(chan struct{})}
	f := New(src.fetch, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Load(context.Background())
	}()
	waitLoading(t, f)

	require.False(t, f.State().Empty(), "no empty signal while loading")
	close(src.release)
	<-done
	require.True(t, f.State().Empty())
}

func TestRefresh_ReplacesRecords(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)
	f.Load(context.Background())

	src.mu.Lock()
	src.records = []models.Record{{ID: "r3", Name: "Grace Hopper"}}
	src.mu.Unlock()

	f.Refresh(context.Background())

	st := f.State()
	require.False(t, st.Refreshing)
	require.Len(t, st.Records, 1)
	require.Equal(t, "r3", st.Records[0].ID)
}

func TestRefresh_FailureKeepsRecords(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)
	f.Load(context.Background())

	src.mu.Lock()
	src.err = &gateway.Error{Kind: gateway.KindNetwork}
	src.mu.Unlock()

	f.Refresh(context.Background())

	st := f.State()
	require.Len(t, st.Records, 2, "failed refresh must not drop records")
	require.NotEmpty(t, st.FetchError)
}

func TestRefresh_IgnoredWhileLoading(t *testing.T) {
	src := &fakeSource{release: make(chan struct{})}
	f := New(src.fetch, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Load(context.Background())
	}()
	waitLoading(t, f)

	f.Refresh(context.Background())
	require.Equal(t, 1, src.callCount(), "refresh while loading must be ignored")

	close(src.release)
	<-done
}

func TestRefresh_SecondPullIgnored(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)
	f.Load(context.Background())

	src.mu.Lock()
	src.release = make(chan struct{})
	src.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Refresh(context.Background())
	}()
	waitRefreshing(t, f)

	f.Refresh(context.Background()) // second pull
	require.Equal(t, 2, src.callCount(), "one load + one refresh only")

	close(src.release)
	<-done
}

func TestLoadingAndRefreshingNeverBothTrue(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	f := New(src.fetch, nil, nil)

	var bad bool
	f.SetOnChange(func(st State) {
		if st.Loading && st.Refreshing {
			bad = true
		}
	})

	f.Load(context.Background())
	f.Refresh(context.Background())
	require.False(t, bad, "loading and refreshing were both true")
}

func TestConfirmLogout_Success(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	signedOut := false
	replaced := false
	f := New(src.fetch, func(ctx context.Context) error {
		signedOut = true
		return nil
	}, func() { replaced = true })
	f.Load(context.Background())

	f.RequestLogout()
	require.True(t, f.State().LogoutVisible)

	f.ConfirmLogout(context.Background())
	require.True(t, signedOut)
	require.True(t, replaced)
	require.False(t, f.State().LogoutVisible)
	require.Empty(t, f.State().LogoutError)
}

func TestConfirmLogout_FailureIsSurfaced(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	replaced := false
	f := New(src.fetch, func(ctx context.Context) error {
		return &gateway.Error{Kind: gateway.KindNetwork}
	}, func() { replaced = true })
	f.Load(context.Background())

	f.RequestLogout()
	f.ConfirmLogout(context.Background())

	require.False(t, replaced, "failed sign-out must not leave the list screen")
	require.NotEmpty(t, f.State().LogoutError)
}

func TestConfirmLogout_RequiresVisibleDialog(t *testing.T) {
	called := false
	f := New((&fakeSource{}).fetch, func(ctx context.Context) error {
		called = true
		return nil
	}, nil)

	f.ConfirmLogout(context.Background())
	require.False(t, called, "sign-out without confirmation dialog")
}

func TestCancelLogout(t *testing.T) {
	f := New((&fakeSource{}).fetch, nil, nil)
	f.RequestLogout()
	f.CancelLogout()
	require.False(t, f.State().LogoutVisible)
}

func TestLoad_ResultAfterCloseIsDropped(t *testing.T) {
	src := &fakeSource{records: sampleRecords(), release: make(chan struct{})}
	f := New(src.fetch, nil, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Load(context.Background())
	}()
	waitLoading(t, f)

	f.Close()
	close(src.release)
	<-done

	require.Empty(t, f.State().Records, "result applied to a torn-down flow")
}

func waitLoading(t *testing.T, f *Flow) {
	t.Helper()
	waitCond(t, func() bool { return f.State().Loading })
}

func waitRefreshing(t *testing.T, f *Flow) {
	t.Helper()
	waitCond(t, func() bool { return f.State().Refreshing })
}

func waitCond(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition never reached")
		}
		time.Sleep(time.Millisecond)
	}
}
