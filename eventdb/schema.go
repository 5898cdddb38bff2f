// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// create a table for pool events
const eventTableSchema = `
create table if not exists event (
	seq integer primary key autoincrement,
	kind text,
	participant blob(20),
	amount blob,
	eventTime decimal(32,0)
);

CREATE INDEX if not exists participantIndex on event(participant);
CREATE INDEX if not exists kindIndex on event(kind);
CREATE INDEX if not exists timeIndex on event(eventTime);
`
