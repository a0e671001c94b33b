/*
Copyright © 2026 the oceanmetrics authors.
This file is part of oceanmetrics.

oceanmetrics is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

oceanmetrics is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with oceanmetrics.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package oceanmetrics calculates diagnostics such as vorticity and
// kinetic and potential energy from two-dimensional (x, z) ocean model
// output on a staggered grid, and applies scalar metrics to batches of
// model runs listed in a parameter table.
package oceanmetrics

// Version gives the version number.
const Version = "0.1.0"
