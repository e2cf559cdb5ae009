package usecase

import "time"

// nowFunc reemplazable en tests.
var nowFunc = time.Now
