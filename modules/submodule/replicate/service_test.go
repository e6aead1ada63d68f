package replicate

import (
	"context"
	"errors"
	"testing"

	r8 "github.com/replicate/replicate-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generateimage "stylo-server/modules/generate-image"
)

type fakeRunner struct {
	identifier string
	input      r8.PredictionInput
	out        r8.PredictionOutput
	err        error
}

func (f *fakeRunner) Run(ctx context.Context, identifier string, input r8.PredictionInput, webhook *r8.Webhook) (r8.PredictionOutput, error) {
	f.identifier = identifier
	f.input = input
	return f.out, f.err
}

func TestOutputURLs(t *testing.T) {
	assert.Equal(t, []string{"https://x/1.png"}, outputURLs("https://x/1.png"))
	assert.Equal(t, []string{"https://x/1.png", "https://x/2.png"},
		outputURLs([]interface{}{"https://x/1.png", 42, "", "https://x/2.png"}))
	assert.Nil(t, outputURLs(nil))
	assert.Nil(t, outputURLs(""))
	assert.Nil(t, outputURLs(map[string]interface{}{"url": "x"}))
}

func TestGenerateBuildsInputFromProfile(t *testing.T) {
	f := &fakeRunner{out: []interface{}{"https://replicate.delivery/out-0.png"}}
	s := &Service{client: f}

	p := generateimage.ParamsFor(generateimage.ReplicateSDXLLightning, "prompt", "neg")
	urls, err := s.Generate(context.Background(), generateimage.ReplicateSDXLLightning, p)

	require.NoError(t, err)
	assert.Equal(t, []string{"https://replicate.delivery/out-0.png"}, urls)
	assert.Equal(t, generateimage.ReplicateSDXLLightning, f.identifier)
	assert.Equal(t, "prompt", f.input["prompt"])
	assert.Equal(t, "neg", f.input["negative_prompt"])
	assert.Equal(t, 4, f.input["num_inference_steps"])
	assert.Equal(t, 1, f.input["num_outputs"])
}

func TestGenerateWrapsError(t *testing.T) {
	s := &Service{client: &fakeRunner{err: errors.New("prediction failed: NSFW")}}
	_, err := s.Generate(context.Background(), "owner/model", generateimage.Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner/model")
	assert.Contains(t, err.Error(), "NSFW")
}

func TestNewServiceWithoutToken(t *testing.T) {
	s, err := NewService("")
	require.NoError(t, err)
	_, err = s.Generate(context.Background(), "owner/model", generateimage.Params{})
	assert.Error(t, err)
	assert.Len(t, s.DefaultModels(), 2)
}
