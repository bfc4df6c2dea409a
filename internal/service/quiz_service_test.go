package service

import (
	"errors"
	"testing"

	"courtside_backend/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAdvancer struct {
	err   error
	calls int
	last  [2]uint
}

func (f *fakeAdvancer) CompleteQuizContent(studentID, quizID uint) error {
	f.calls++
	f.last = [2]uint{studentID, quizID}
	return f.err
}

func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.ErrorLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestAdvanceCurriculumLogsRepositoryFailure(t *testing.T) {
	logs := captureLogs(t)

	adv := &fakeAdvancer{err: errors.New("save item statuses: connection reset")}
	s := &QuizService{Curriculum: adv}

	s.advanceCurriculum(42, 7)

	if adv.calls != 1 || adv.last != [2]uint{42, 7} {
		t.Fatalf("advancer called %d times with args %v", adv.calls, adv.last)
	}
	entries := logs.FilterMessage("failed to advance curriculum after passed quiz").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["userId"] != uint64(42) || fields["quizId"] != uint64(7) {
		t.Fatalf("log fields = %v", fields)
	}
}

func TestAdvanceCurriculumQuietOnSuccess(t *testing.T) {
	logs := captureLogs(t)

	s := &QuizService{Curriculum: &fakeAdvancer{}}
	s.advanceCurriculum(42, 7)

	if n := logs.Len(); n != 0 {
		t.Fatalf("logged %d entries, want none", n)
	}
}

func TestAdvanceCurriculumWithoutCurriculumService(t *testing.T) {
	s := &QuizService{}
	s.advanceCurriculum(42, 7)
}
