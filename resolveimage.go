package sandboxspec

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

// ResolvedImage is what an image contributes to a container once fetched:
// the subset of {working_directory, layers, environment} the directive's
// `image.use` actually claimed.
type ResolvedImage struct {
	WorkingDirectory string
	Layers           []Layer
	Environment      map[string]string
}

// FetchImage resolves img.Name against a registry and returns the fields
// img.Use claims, per §6.3: a finalized Container's FromImage markers
// signal the consumer must resolve the image and substitute before
// executing; this is that resolution step.
func FetchImage(img Image) (ResolvedImage, error) {
	ref, err := name.ParseReference(img.Name, name.WeakValidation)
	if err != nil {
		return ResolvedImage{}, fmt.Errorf("parsing image reference %q: %w", img.Name, err)
	}

	remoteImg, err := remote.Image(ref)
	if err != nil {
		return ResolvedImage{}, fmt.Errorf("fetching image %q: %w", img.Name, err)
	}

	var resolved ResolvedImage

	if _, ok := img.Use[ImageUseWorkingDirectory]; ok {
		cfg, err := remoteImg.ConfigFile()
		if err != nil {
			return ResolvedImage{}, fmt.Errorf("reading config for %q: %w", img.Name, err)
		}
		resolved.WorkingDirectory = cfg.Config.WorkingDir
	}

	if _, ok := img.Use[ImageUseEnvironment]; ok {
		cfg, err := remoteImg.ConfigFile()
		if err != nil {
			return ResolvedImage{}, fmt.Errorf("reading config for %q: %w", img.Name, err)
		}
		resolved.Environment = parseImageEnv(cfg.Config.Env)
	}

	if _, ok := img.Use[ImageUseLayers]; ok {
		layers, err := imageLayersToLayerSpecs(remoteImg)
		if err != nil {
			return ResolvedImage{}, fmt.Errorf("reading layers for %q: %w", img.Name, err)
		}
		resolved.Layers = layers
	}

	return resolved, nil
}

// parseImageEnv turns an OCI config's "KEY=VALUE" env list into a map,
// matching the shape decode_environment produces.
func parseImageEnv(env []string) map[string]string {
	out := make(map[string]string, len(env))
	for _, entry := range env {
		for i := 0; i < len(entry); i++ {
			if entry[i] == '=' {
				out[entry[:i]] = entry[i+1:]
				break
			}
		}
	}
	return out
}

// imageLayersToLayerSpecs represents each of the image's own filesystem
// layers as a tar-variant Layer addressed by its content digest, so a
// resolved container's layer stack is uniform regardless of whether a
// layer came from the image or from an explicit declaration.
func imageLayersToLayerSpecs(img v1.Image) ([]Layer, error) {
	layers, err := img.Layers()
	if err != nil {
		return nil, err
	}
	specs := make([]Layer, 0, len(layers))
	for _, layer := range layers {
		digest, err := layer.Digest()
		if err != nil {
			return nil, err
		}
		specs = append(specs, Layer{Kind: LayerTar, Tar: digest.String()})
	}
	return specs, nil
}
