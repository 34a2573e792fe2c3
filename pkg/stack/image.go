package stack

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

func docker(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// BuildImage builds the service image from the given context directory.
func BuildImage(ctx context.Context, name, tag, contextDir string) error {
	ref := name + ":" + tag
	fmt.Printf("Building image %s...\n", ref)
	if err := docker(ctx, "build", "-t", ref, contextDir); err != nil {
		return fmt.Errorf("image build failed for %s: %w", ref, err)
	}
	return nil
}

// TagImage applies an additional tag, typically the registry-qualified name
// used to retain main-branch builds.
func TagImage(ctx context.Context, srcRef, dstRef string) error {
	fmt.Printf("Tagging %s as %s...\n", srcRef, dstRef)
	if err := docker(ctx, "tag", srcRef, dstRef); err != nil {
		return fmt.Errorf("image tag failed: %w", err)
	}
	return nil
}

// Prune removes dangling images and unused volumes. Best-effort: each
// sub-command failure is logged and the next one still runs.
func Prune(ctx context.Context) {
	for _, args := range [][]string{
		{"image", "prune", "-f"},
		{"volume", "prune", "-f"},
	} {
		if err := docker(ctx, args...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: docker %s failed: %v\n", args[0], err)
		}
	}
}
