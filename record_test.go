package newsrelay_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/newsrelay"
	"github.com/stretchr/testify/assert"
)

func TestRun_Counts(t *testing.T) {
	t.Parallel()

	run := &newsrelay.Run{
		Records: []*newsrelay.Record{
			{Status: newsrelay.RecordSuccess},
			{Status: newsrelay.RecordFailed},
			{Status: newsrelay.RecordSuccess},
		},
	}

	assert.Equal(t, 2, run.Published())
	assert.Equal(t, 1, run.Failed())
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires article URL", func(t *testing.T) {
		t.Parallel()

		r := &newsrelay.Record{Status: newsrelay.RecordSuccess}
		assert.Equal(t, newsrelay.EINVALID, newsrelay.ErrorCode(r.Validate()))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		r := &newsrelay.Record{Status: "skipped", Article: newsrelay.RecordArticle{URL: "https://example.com"}}
		assert.Equal(t, newsrelay.EINVALID, newsrelay.ErrorCode(r.Validate()))
	})
}

func TestOutcome_Message(t *testing.T) {
	t.Parallel()

	t.Run("success has no message", func(t *testing.T) {
		t.Parallel()

		o := &newsrelay.Outcome{Article: &newsrelay.Article{Body: "<p>x</p>"}}
		assert.True(t, o.Succeeded())
		assert.Empty(t, o.Message())
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()

		o := &newsrelay.Outcome{Reason: newsrelay.ReasonEmptyContent}
		assert.False(t, o.Succeeded())
		assert.Equal(t, "Empty or no content found", o.Message())
	})

	t.Run("fetch error uses cause", func(t *testing.T) {
		t.Parallel()

		o := &newsrelay.Outcome{Reason: newsrelay.ReasonFetchError, Err: errors.New("timeout")}
		assert.Equal(t, "timeout", o.Message())
	})
}

func TestArticle_HasBody(t *testing.T) {
	t.Parallel()

	var nilArticle *newsrelay.Article
	assert.False(t, nilArticle.HasBody())
	assert.False(t, (&newsrelay.Article{}).HasBody())
	assert.True(t, (&newsrelay.Article{Body: "<p>x</p>"}).HasBody())
}
