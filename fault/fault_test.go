// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/hub/fault"
)

var (
	ErrInvalidOne   = fault.InvalidError("invalid one")
	ErrInvalidTwo   = fault.InvalidError("invalid two")
	ErrNotFoundOne  = fault.NotFoundError("not found one")
	ErrNotFoundTwo  = fault.NotFoundError("not found two")
	ErrProcessOne   = fault.ProcessError("process one")
	ErrProcessTwo   = fault.ProcessError("process two")
	ErrRetryableOne = fault.RetryableError("retryable one")
	ErrRetryableTwo = fault.RetryableError("retryable two")
	ErrFatalOne     = fault.FatalError("fatal one")
	ErrFatalTwo     = fault.FatalError("fatal two")
)

// test that the error classes are mutually exclusive and correctly classified
func TestErrorClasses(t *testing.T) {
	errorList := []struct {
		err       error
		invalid   bool
		notFound  bool
		process   bool
		retryable bool
		fatal     bool
	}{
		{ErrInvalidOne, true, false, false, false, false},
		{ErrInvalidTwo, true, false, false, false, false},
		{ErrNotFoundOne, false, true, false, false, false},
		{ErrNotFoundTwo, false, true, false, false, false},
		{ErrProcessOne, false, false, true, false, false},
		{ErrProcessTwo, false, false, true, false, false},
		{ErrRetryableOne, false, false, false, true, false},
		{ErrRetryableTwo, false, false, false, true, false},
		{ErrFatalOne, false, false, false, false, true},
		{ErrFatalTwo, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
		if fault.IsErrRetryable(err) != e.retryable {
			t.Errorf("%d: expected 'retryable' == %v for err = %v", i, e.retryable, err)
		}
		if fault.IsErrFatal(err) != e.fatal {
			t.Errorf("%d: expected 'fatal' == %v for err = %v", i, e.fatal, err)
		}
	}
}
