// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// ChartConfig is a named, typed chart definition used by the presentation
// slides. Data and Styling are application-defined JSON; the server never
// interprets them beyond "valid JSON". Chart configs are independent
// records — they do not participate in version activation.
type ChartConfig struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ChartType string    `json:"chartType"` // "revenue", "funds", "market", ...
	Data      any       `json:"data"`
	Styling   any       `json:"styling"` // nil when the client sent none
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChartConfigPatch carries the fields of a partial chart update. Nil
// pointers mean "leave unchanged". Styling distinguishes absent from an
// explicit null via the Set flag.
type ChartConfigPatch struct {
	Name       *string
	ChartType  *string
	Data       any
	HasData    bool
	Styling    any
	HasStyling bool
}
