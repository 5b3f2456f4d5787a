package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) Exists(ctx context.Context, trackingID kernel.TrackingID) (bool, error) {
	args := m.Called(ctx, trackingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) ConditionalUpdate(
	ctx context.Context,
	trackingID kernel.TrackingID,
	fields parcel.FieldSet,
	logEntry *parcel.StatusLogEntry,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, trackingID, fields, logEntry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelUoWFactory struct{ mock.Mock }

func (m *MockParcelUoWFactory) Create() commands.ParcelUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelUoW)
}

type stubIDGenerator struct {
	ids  []kernel.TrackingID
	next int
}

func (g *stubIDGenerator) Generate() (kernel.TrackingID, error) {
	id := g.ids[g.next%len(g.ids)]
	g.next++
	return id, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mustTrackingID(t *testing.T, s string) kernel.TrackingID {
	t.Helper()
	id, err := kernel.TrackingIDFromString(s)
	require.NoError(t, err)
	return id
}

func mustReceiver(t *testing.T) parcel.Receiver {
	t.Helper()
	r, err := parcel.NewReceiver("Jane Roe", "+15550101", "12 Harbor Lane, Springfield", "jane.roe@example.com")
	require.NoError(t, err)
	return r
}

func mustPackageDetails(t *testing.T) parcel.PackageDetails {
	t.Helper()
	d, err := parcel.NewPackageDetails(parcel.Package, 2.5, "Books")
	require.NoError(t, err)
	return d
}

func mustSender(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	u, err := user.NewUser(id, "Sam Sender", "sam@example.com", user.Sender)
	require.NoError(t, err)
	return u
}

func newLooseUoW(parcelRepo *MockParcelRepository, userRepo *MockUserRepository) *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	if parcelRepo != nil {
		uow.On("ParcelRepository").Return(parcelRepo)
	}
	if userRepo != nil {
		uow.On("UserRepository").Return(userRepo)
	}
	return uow
}

func TestCreateParcelCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	senderID := kernel.NewUUID()
	trackingID := mustTrackingID(t, "TRK-20260831-AAAA1111")

	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: senderID, Role: user.Sender},
		senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Exists", mock.Anything, trackingID).Return(false, nil).Once()
	parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, senderID).Return(mustSender(t, senderID), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(newLooseUoW(parcelRepo, userRepo))

	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{trackingID}}, fixedClock{now})

	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.TrackingID().IsEqual(trackingID))
	assert.Equal(t, parcel.Requested, created.CurrentStatus())
	require.Len(t, created.StatusLog(), 1)
	assert.Equal(t, parcel.CreatedNote, created.StatusLog()[0].Note())
	assert.True(t, created.StatusLog()[0].UpdatedBy().IsEqual(senderID))
	assert.Equal(t, now, created.CreatedAt())
	parcelRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_ForbiddenRoles(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	factory := new(MockUoWFactory)
	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	for _, role := range []user.Role{user.Receiver, user.DeliveryMan} {
		cmd, err := commands.NewCreateParcelCommand(
			user.Actor{ID: kernel.NewUUID(), Role: role},
			senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
		require.NoError(t, err)

		created, err := h.Handle(ctx, cmd)

		require.Error(t, err, "role %s", role)
		assert.Nil(t, created)
		require.ErrorIs(t, err, errs.ErrForbidden)
	}
}

func TestCreateParcelCommandHandler_Handle_SenderCannotFileForOthers(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: kernel.NewUUID(), Role: user.Sender},
		kernel.NewUUID(), mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, errs.ErrForbidden)
}

func TestCreateParcelCommandHandler_Handle_SenderDoesNotExist(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	adminID := kernel.NewUUID()

	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: adminID, Role: user.Admin},
		senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, senderID).
		Return(nil, errs.NewObjectNotFoundError("id", senderID)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(newLooseUoW(nil, userRepo))

	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestCreateParcelCommandHandler_Handle_TargetUserIsNotSender(t *testing.T) {
	ctx := t.Context()
	targetID := kernel.NewUUID()

	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: kernel.NewUUID(), Role: user.SuperAdmin},
		targetID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	courier, err := user.NewUser(targetID, "Carl Courier", "carl@example.com", user.DeliveryMan)
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, targetID).Return(courier, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(newLooseUoW(nil, userRepo))

	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestCreateParcelCommandHandler_Handle_RetriesOnTakenTrackingID(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	taken := mustTrackingID(t, "TRK-20260831-AAAA1111")
	free := mustTrackingID(t, "TRK-20260831-BBBB2222")

	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: senderID, Role: user.Sender},
		senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Exists", mock.Anything, taken).Return(true, nil).Once()
	parcelRepo.On("Exists", mock.Anything, free).Return(false, nil).Once()
	parcelRepo.On("Add", mock.Anything, mock.AnythingOfType("*parcel.Parcel")).Return(nil).Once()

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, senderID).Return(mustSender(t, senderID), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(newLooseUoW(parcelRepo, userRepo))

	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{taken, free}}, fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.TrackingID().IsEqual(free))
	parcelRepo.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_AllocationExhausted(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	taken := mustTrackingID(t, "TRK-20260831-AAAA1111")

	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: senderID, Role: user.Sender},
		senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	parcelRepo := new(MockParcelRepository)
	parcelRepo.On("Exists", mock.Anything, taken).Return(true, nil).Times(5)

	userRepo := new(MockUserRepository)
	userRepo.On("Get", mock.Anything, senderID).Return(mustSender(t, senderID), nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(newLooseUoW(parcelRepo, userRepo))

	generator := &stubIDGenerator{ids: []kernel.TrackingID{taken}}
	h := commands.NewCreateParcelCommandHandler(factory, generator, fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, errs.ErrTrackingIDAllocationExhausted)
	assert.Equal(t, 5, generator.next)
	parcelRepo.AssertExpectations(t)
}

func TestCreateParcelCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateParcelCommand{} // not constructed properly
	factory := new(MockUoWFactory)
	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, commands.ErrCreateParcelCommandIsNotConstructed)
}

func TestCreateParcelCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	senderID := kernel.NewUUID()
	cmd, err := commands.NewCreateParcelCommand(
		user.Actor{ID: senderID, Role: user.Sender},
		senderID, mustReceiver(t), mustPackageDetails(t), 12.5, nil)
	require.NoError(t, err)

	uow := new(MockUoW)
	beginErr := errors.New("connection refused")
	uow.On("Begin", mock.Anything).Return(beginErr)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateParcelCommandHandler(
		factory, &stubIDGenerator{ids: []kernel.TrackingID{mustTrackingID(t, "TRK-20260831-AAAA1111")}},
		fixedClock{time.Now()})

	created, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, created)
	require.ErrorIs(t, err, beginErr)
}
