package dockerclient

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/docker/docker/api/types/build"
	"github.com/docker/docker/api/types/image"
	sdkimage "github.com/docker/go-sdk/image"
)

type DockerImageEnsurer interface {
	EnsureImage(ctx context.Context, baseImage, tag string, setup []string) (string, error)
}

// EnsureImage makes sure the build image named by tag exists locally.
// Without setup commands the base image itself is used, pulling it if
// needed. With setup commands a derived image is built on top of the
// base and tagged, once; later calls reuse it.
func (dc *dockerClient) EnsureImage(ctx context.Context, baseImage, tag string, setup []string) (string, error) {
	if len(setup) == 0 {
		if !dc.ImageExists(ctx, baseImage) {
			if err := dc.pullImage(ctx, baseImage); err != nil {
				return "", err
			}
		}
		return baseImage, nil
	}

	if dc.ImageExists(ctx, tag) {
		return tag, nil
	}

	return dc.buildImage(ctx, renderDockerfile(baseImage, setup), tag)
}

func (dc *dockerClient) pullImage(ctx context.Context, imageRef string) error {
	rc, err := dc.client.ImagePull(ctx, imageRef, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("image pull %s: %w", imageRef, err)
	}
	defer rc.Close()

	// The daemon streams pull progress; drain it so the pull completes.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("image pull %s: %w", imageRef, err)
	}
	return nil
}

func renderDockerfile(baseImage string, setup []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FROM %s\n", baseImage)
	for _, line := range setup {
		fmt.Fprintf(&b, "RUN %s\n", line)
	}
	return b.String()
}

func (dc *dockerClient) buildImage(ctx context.Context, dockerfile string, tag string) (string, error) {
	var buf bytes.Buffer
	tarWriter := tar.NewWriter(&buf)

	dockerFileBytes := []byte(dockerfile)
	tarHeader := &tar.Header{
		Name: "Dockerfile",
		Mode: 0o600,
		Size: int64(len(dockerFileBytes)),
	}

	if err := tarWriter.WriteHeader(tarHeader); err != nil {
		return "", fmt.Errorf("write tar header: %w", err)
	}
	if _, err := tarWriter.Write(dockerFileBytes); err != nil {
		return "", fmt.Errorf("write dockerfile: %w", err)
	}
	if err := tarWriter.Close(); err != nil {
		return "", fmt.Errorf("close tar: %w", err)
	}

	buildTag, err := sdkimage.Build(
		ctx,
		&buf,
		tag,
		sdkimage.WithBuildClient(dc.client),
		sdkimage.WithBuildOptions(build.ImageBuildOptions{
			Dockerfile: "Dockerfile",
			Remove:     true, // remove intermediate containers
		}),
	)
	if err != nil {
		return "", fmt.Errorf("image build: %w", err)
	}

	return buildTag, nil
}
