// SPDX-License-Identifier: Apache-2.0

package client

import "errors"

// errMissingDependency is returned by NewApp when one of the required
// collaborators was not provided.
var errMissingDependency = errors.New("missing required dependency")
