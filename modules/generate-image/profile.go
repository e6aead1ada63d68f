package generateimage

import "strings"

// Built-in candidate models per provider.
const (
	ReplicateSDXL          = "stability-ai/sdxl:39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"
	ReplicateSDXLLightning = "bytedance/sdxl-lightning-4step:5599ed30703defd1d160a25a63321b4dec97101d98b4674bcc56e41f62f35637"
	RunwareFluxDev         = "runware:101@1"
	RunwareFluxSchnell     = "runware:100@1"
)

// ParamBuilder fills model-specific sizes and sampler settings.
type ParamBuilder func(prompt, negative string) Params

func fixedProfile(width, height, steps int, guidance float64) ParamBuilder {
	return func(prompt, negative string) Params {
		return Params{
			Prompt:         prompt,
			NegativePrompt: negative,
			Width:          width,
			Height:         height,
			Steps:          steps,
			Guidance:       guidance,
		}
	}
}

// portrait 2:3 keeps head-to-toe framing
var (
	highFidelityProfile = fixedProfile(768, 1152, 30, 7.5)
	lightningProfile    = fixedProfile(1024, 1024, 4, 0)
	fluxDevProfile      = fixedProfile(832, 1216, 28, 3.5)
	fluxSchnellProfile  = fixedProfile(832, 1216, 4, 1.0)
	defaultProfile      = fixedProfile(768, 1024, 25, 7.0)
)

// profiles is keyed by model id without the Replicate version hash.
var profiles = map[string]ParamBuilder{
	"stability-ai/sdxl":              highFidelityProfile,
	"bytedance/sdxl-lightning-4step": lightningProfile,
	RunwareFluxDev:                   fluxDevProfile,
	RunwareFluxSchnell:               fluxSchnellProfile,
}

// profileKey strips "owner/name:version" down to "owner/name".
// Runware ids ("runware:100@1") have no slash and are kept whole.
func profileKey(model string) string {
	if strings.Contains(model, "/") {
		if i := strings.Index(model, ":"); i >= 0 {
			return model[:i]
		}
	}
	return model
}

// ParamsFor returns the generation parameters for a model id.
func ParamsFor(model, prompt, negative string) Params {
	if b, ok := profiles[profileKey(model)]; ok {
		return b(prompt, negative)
	}
	return defaultProfile(prompt, negative)
}
