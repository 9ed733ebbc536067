package service

import (
	"testing"
	"time"

	"github.com/lidiya-fiker/unity-bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func joinableSession() model.Session {
	return model.Session{
		ID:          "sess-1",
		Date:        "2024-06-15",
		StartTime:   "10:00",
		EndTime:     "11:00",
		ZoomJoinURL: "https://zoom.example/j/1",
	}
}

func at(clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-06-15 "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestIsJoinable(t *testing.T) {
	sess := joinableSession()

	assert.False(t, IsJoinable(sess, at("09:49")), "more than 10 minutes before start")
	assert.True(t, IsJoinable(sess, at("09:50")), "join window opens 10 minutes before")
	assert.True(t, IsJoinable(sess, at("10:30")), "during the session")
	assert.True(t, IsJoinable(sess, at("10:59")))
	assert.False(t, IsJoinable(sess, at("11:00")), "closed at end time")
}

func TestIsJoinableNoURL(t *testing.T) {
	sess := joinableSession()
	sess.ZoomJoinURL = ""

	assert.False(t, IsJoinable(sess, at("10:30")))
}

func TestIsJoinableDateWithTimeSuffix(t *testing.T) {
	sess := joinableSession()
	sess.Date = "2024-06-15T00:00:00.000Z"
	sess.StartTime = "10:00:00"
	sess.EndTime = "11:00:00"

	assert.True(t, IsJoinable(sess, at("10:30")))
}

func TestIsJoinableBrokenTimes(t *testing.T) {
	sess := joinableSession()
	sess.StartTime = "soon"

	assert.False(t, IsJoinable(sess, at("10:30")))

	sess = joinableSession()
	sess.Date = "someday"
	assert.False(t, IsJoinable(sess, at("10:30")))
}

func TestSessionCounselorID(t *testing.T) {
	sess := model.Session{
		Counselor: &model.SessionCounselor{UserID: "u-1"},
		Schedule:  &model.SessionSchedule{CounselorID: "c-2"},
	}
	assert.Equal(t, "u-1", sess.CounselorID(), "counselor block wins")

	sess.Counselor = nil
	assert.Equal(t, "c-2", sess.CounselorID(), "schedule is the fallback")

	sess.Schedule = nil
	assert.Empty(t, sess.CounselorID())
}
