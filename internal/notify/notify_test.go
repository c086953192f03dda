package notify_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"guardian/internal/domain"
	"guardian/internal/notify"
)

func TestRecorder_KeepsMostRecent(t *testing.T) {
	r := notify.NewRecorder(2)
	for i := range 3 {
		r.Notify(context.Background(), domain.Notice{Title: fmt.Sprint(i)})
	}
	assert.Equal(t, []string{"1", "2"}, r.Titles())
}

func TestMulti_FansOut(t *testing.T) {
	var buf bytes.Buffer
	rec := notify.NewRecorder(0)
	m := notify.Multi{rec, notify.NewWriterNotifier(&buf)}

	m.Notify(context.Background(), domain.Notice{
		Level:   domain.NoticeWarning,
		Title:   "Fall Detected!",
		Message: "Your phone was dropped!",
	})

	assert.Equal(t, []string{"Fall Detected!"}, rec.Titles())
	assert.Equal(t, "[warning] Fall Detected!: Your phone was dropped!\n", buf.String())
}
