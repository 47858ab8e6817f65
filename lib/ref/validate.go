// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// parseMatrixID splits "@localpart:server". The server is everything
// after the first colon, so ports ("@bot:localhost:8008") survive.
func parseMatrixID(matrixID string) (localpart, server string, err error) {
	const kind = "Matrix user ID"
	rest, hasSigil := strings.CutPrefix(matrixID, "@")
	if !hasSigil || rest == "" {
		return "", "", fmt.Errorf("invalid %s %q: must start with @", kind, matrixID)
	}
	localpart, server, found := strings.Cut(rest, ":")
	switch {
	case !found:
		return "", "", fmt.Errorf("invalid %s %q: missing :server", kind, matrixID)
	case localpart == "":
		return "", "", fmt.Errorf("invalid %s %q: empty localpart", kind, matrixID)
	case server == "":
		return "", "", fmt.Errorf("invalid %s %q: empty server", kind, matrixID)
	}
	return localpart, server, nil
}
