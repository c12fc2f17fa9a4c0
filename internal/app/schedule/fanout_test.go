package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGather_FlattensInSlotOrder(t *testing.T) {
	programs, err := gather(context.Background(), 3, func(_ context.Context, i int) ([]Program, error) {
		// Later slots finish first to prove ordering is by slot, not by
		// completion.
		time.Sleep(time.Duration(3-i) * 10 * time.Millisecond)
		return []Program{{Title: fmt.Sprintf("slot %d", i)}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Program{{Title: "slot 0"}, {Title: "slot 1"}, {Title: "slot 2"}}, programs)
}

func TestGather_AnyFailureFailsTheWholeCall(t *testing.T) {
	boom := errors.New("slot failed")

	programs, err := gather(context.Background(), 3, func(_ context.Context, i int) ([]Program, error) {
		if i == 1 {
			return nil, boom
		}
		return []Program{{Title: fmt.Sprintf("slot %d", i)}}, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, programs)
}
