// Package mocks provides test doubles for the judge package.
package mocks

import (
	"context"

	judge "github.com/sells-group/profile-finder/internal/judge"
	mock "github.com/stretchr/testify/mock"
)

// MockJudge is a mock type for the Judge interface.
type MockJudge struct {
	mock.Mock
}

// Judge provides a mock function with given fields: ctx, req
func (_m *MockJudge) Judge(ctx context.Context, req judge.Request) (*judge.Judgment, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Judge")
	}

	var r0 *judge.Judgment
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, judge.Request) (*judge.Judgment, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, judge.Request) *judge.Judgment); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*judge.Judgment)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, judge.Request) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockJudge creates a new instance of MockJudge.
func NewMockJudge(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockJudge {
	mock := &MockJudge{}
	mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
