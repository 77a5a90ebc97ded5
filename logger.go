// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import logger "github.com/d2r2/go-logger"

// lg logs per-poll details. Process level events go to logrus.
var lg = logger.NewPackageLogger("sensor", logger.InfoLevel)
