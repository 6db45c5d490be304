package limiter_test

import (
	"errors"
	"testing"

	"github.com/openriddle/riddleledger/foundation/ledger/limiter"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const (
	riddle1    = "riddle-1"
	riddle2    = "riddle-2"
	principalA = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
	principalB = "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"
)

func Test_Limiter(t *testing.T) {
	t.Log("Given the need to bound failed attempts per riddle and principal.")
	{
		lim := limiter.New(2)

		if err := lim.Check(riddle1, principalA); err != nil {
			t.Fatalf("\t%s\tShould allow a principal with no failures: %v", failed, err)
		}
		t.Logf("\t%s\tShould allow a principal with no failures.", success)

		lim.RecordFailure(riddle1, principalA)
		if err := lim.Check(riddle1, principalA); err != nil {
			t.Fatalf("\t%s\tShould allow a principal under the limit: %v", failed, err)
		}
		t.Logf("\t%s\tShould allow a principal under the limit.", success)

		lim.RecordFailure(riddle1, principalA)
		if err := lim.Check(riddle1, principalA); !errors.Is(err, limiter.ErrAttemptsExhausted) {
			t.Fatalf("\t%s\tShould get ErrAttemptsExhausted at the limit, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould get ErrAttemptsExhausted at the limit.", success)

		if err := lim.Check(riddle1, principalB); err != nil {
			t.Fatalf("\t%s\tShould keep counters separate per principal: %v", failed, err)
		}
		t.Logf("\t%s\tShould keep counters separate per principal.", success)

		if err := lim.Check(riddle2, principalA); err != nil {
			t.Fatalf("\t%s\tShould keep counters separate per riddle: %v", failed, err)
		}
		t.Logf("\t%s\tShould keep counters separate per riddle.", success)
	}
}
