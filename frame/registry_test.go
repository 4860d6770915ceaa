package frame

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funkite/octaindex3d/errs"
)

// Frame IDs used below are unique per test; the registry is process-global.

func TestRegisterAndGet(t *testing.T) {
	desc := Descriptor{Name: "ecef", CRS: "WGS-84", Description: "earth-centered earth-fixed", EarthFixed: true, Scale: 1.0}

	require.NoError(t, Register(10, desc))

	got, err := Get(10)
	require.NoError(t, err)
	require.Equal(t, desc, got)
}

func TestGetUnregistered(t *testing.T) {
	_, err := Get(11)
	require.ErrorIs(t, err, errs.ErrFrameNotFound)

	var notFound *errs.FrameNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, uint8(11), notFound.ID)
}

func TestRegisterIdempotent(t *testing.T) {
	desc := Descriptor{Name: "map", CRS: "local", Scale: 0.05}

	require.NoError(t, Register(12, desc))
	require.NoError(t, Register(12, desc), "identical re-registration succeeds")

	other := desc
	other.Scale = 0.1
	err := Register(12, other)
	require.ErrorIs(t, err, errs.ErrFrameConflict)

	// The stored descriptor is untouched by the failed attempt.
	got, err := Get(12)
	require.NoError(t, err)
	require.Equal(t, desc, got)
}

func TestRegisterReservedSentinel(t *testing.T) {
	err := Register(None, Descriptor{Name: "nope"})
	require.ErrorIs(t, err, errs.ErrFrameConflict)
}

func TestAllSnapshotOrdered(t *testing.T) {
	require.NoError(t, Register(31, Descriptor{Name: "c", Scale: 1}))
	require.NoError(t, Register(30, Descriptor{Name: "b", Scale: 1}))
	require.NoError(t, Register(32, Descriptor{Name: "d", Scale: 1}))

	var ids []uint8
	for id := range All() {
		ids = append(ids, id)
	}

	require.GreaterOrEqual(t, len(ids), 3)
	for i := 1; i < len(ids); i++ {
		require.Less(t, ids[i-1], ids[i], "iteration must be id-ordered")
	}
}

func TestFingerprint(t *testing.T) {
	a := Descriptor{Name: "ecef", CRS: "WGS-84", Scale: 1.0}
	b := a
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Scale = 2.0
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// Field-boundary shifts must not collide.
	c := Descriptor{Name: "ec", CRS: "efWGS-84", Scale: 1.0}
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestConcurrentRegistrationAndReads(t *testing.T) {
	desc := Descriptor{Name: "swarm", Scale: 1}

	var wg sync.WaitGroup
	errsCh := make(chan error, 64)
	for range 32 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errsCh <- Register(60, desc)
		}()
		go func() {
			defer wg.Done()
			if _, err := Get(60); err != nil && !errors.Is(err, errs.ErrFrameNotFound) {
				// Not yet registered is the only acceptable failure.
				errsCh <- err
			}
		}()
	}
	wg.Wait()
	close(errsCh)

	for err := range errsCh {
		require.NoError(t, err)
	}

	got, err := Get(60)
	require.NoError(t, err)
	require.Equal(t, desc, got)
	require.Positive(t, Count())
}
