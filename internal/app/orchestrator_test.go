package app

import (
	"context"
	"testing"

	"github.com/dkeye/Doodle/internal/core"
	"github.com/dkeye/Doodle/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestOrchestrator() (*Orchestrator, *MockRooms) {
	rooms := new(MockRooms)
	return &Orchestrator{Registry: NewRegistry(), Rooms: rooms}, rooms
}

func TestOrchestrator_SetPlayerNameCreatesRoom(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.Connect("s1", &bufConn{}, func() {})

	ev := core.SetPlayerName{Name: "Ann"}
	rooms.On("Dispatch", domain.RoomCode("ABC"), core.Envelope{From: "s1", Event: ev}, true).Return(true).Once()

	o.OnEvent("s1", "ABC", ev)

	rooms.AssertExpectations(t)
	code, ok := o.Registry.RoomOf("s1")
	assert.True(t, ok)
	assert.Equal(t, domain.RoomCode("ABC"), code)
}

func TestOrchestrator_OtherEventsNeverCreate(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.Connect("s1", &bufConn{}, func() {})

	// not bound to any room yet
	o.OnEvent("s1", "ABC", core.SubmitDrawing{Drawing: "d"})
	rooms.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)

	rooms.On("Dispatch", domain.RoomCode("ABC"), mock.Anything, true).Return(true).Once()
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Ann"})

	vote := core.VoteWord{Word: "cat"}
	rooms.On("Dispatch", domain.RoomCode("ABC"), core.Envelope{From: "s1", Event: vote}, false).Return(true).Once()
	o.OnEvent("s1", "ABC", vote)

	// a room the connection is not bound to
	o.OnEvent("s1", "XYZ", core.NewRound{})

	rooms.AssertExpectations(t)
	rooms.AssertNumberOfCalls(t, "Dispatch", 2)
}

func TestOrchestrator_SwitchRoomLeavesPrevious(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.Connect("s1", &bufConn{}, func() {})

	rooms.On("Dispatch", domain.RoomCode("ABC"), mock.Anything, true).Return(true).Once()
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Ann"})

	leave := rooms.On("Dispatch", domain.RoomCode("ABC"), core.Envelope{From: "s1", Event: core.Disconnect{}}, false).Return(true).Once()
	rooms.On("Dispatch", domain.RoomCode("XYZ"), mock.Anything, true).Return(true).Once().NotBefore(leave)
	o.OnEvent("s1", "XYZ", core.SetPlayerName{Name: "Ann"})

	rooms.AssertExpectations(t)
	code, _ := o.Registry.RoomOf("s1")
	assert.Equal(t, domain.RoomCode("XYZ"), code)
}

func TestOrchestrator_InvalidNameKeepsRoom(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.Connect("s1", &bufConn{}, func() {})
	rooms.On("Dispatch", domain.RoomCode("ABC"), mock.Anything, true).Return(true).Once()
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Ann"})

	o.OnEvent("s1", "XYZ", core.SetPlayerName{Name: "   "})
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: ""})

	rooms.AssertExpectations(t)
	rooms.AssertNumberOfCalls(t, "Dispatch", 1)
	code, ok := o.Registry.RoomOf("s1")
	assert.True(t, ok)
	assert.Equal(t, domain.RoomCode("ABC"), code)

	// a fresh connection with an invalid name creates nothing
	o.Connect("s2", &bufConn{}, func() {})
	o.OnEvent("s2", "NEW", core.SetPlayerName{Name: ""})
	rooms.AssertNumberOfCalls(t, "Dispatch", 1)
	_, ok = o.Registry.RoomOf("s2")
	assert.False(t, ok)
}

func TestOrchestrator_RenameInSameRoom(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.Connect("s1", &bufConn{}, func() {})

	rooms.On("Dispatch", domain.RoomCode("ABC"), mock.Anything, true).Return(true).Twice()
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Ann"})
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Annie"})

	rooms.AssertExpectations(t)
	rooms.AssertNotCalled(t, "Dispatch", mock.Anything, core.Envelope{From: "s1", Event: core.Disconnect{}}, false)
}

func TestOrchestrator_OnDisconnect(t *testing.T) {
	o, rooms := newTestOrchestrator()

	// connection that never named a player
	o.Connect("s0", &bufConn{}, func() {})
	o.OnDisconnect("s0")
	rooms.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
	assert.Zero(t, o.Registry.Len())

	o.Connect("s1", &bufConn{}, func() {})
	rooms.On("Dispatch", domain.RoomCode("ABC"), mock.Anything, true).Return(true).Once()
	o.OnEvent("s1", "ABC", core.SetPlayerName{Name: "Ann"})

	rooms.On("Dispatch", domain.RoomCode("ABC"), core.Envelope{From: "s1", Event: core.Disconnect{}}, false).Return(true).Once()
	o.OnDisconnect("s1")
	o.OnDisconnect("s1")

	rooms.AssertExpectations(t)
	_, ok := o.Registry.Conn("s1")
	assert.False(t, ok)
}

func TestOrchestrator_UnknownConnection(t *testing.T) {
	o, rooms := newTestOrchestrator()
	o.OnEvent("ghost", "ABC", core.SetPlayerName{Name: "Ann"})
	rooms.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegistry_Cancel(t *testing.T) {
	reg := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	reg.Bind("s1", &bufConn{}, cancel)

	assert.True(t, reg.Cancel("s1"))
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, reg.Cancel("nope"))
}
