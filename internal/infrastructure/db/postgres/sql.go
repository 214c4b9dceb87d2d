package postgres

const insertEventSQL = `
INSERT INTO events (
  id, name, event_date, venue, max_players,
  shuttlecock_price, court_hourly_rate, shuttlecocks_used, status,
  created_by, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`

const selectEventColumns = `
SELECT id, name, event_date, venue, max_players,
       shuttlecock_price, court_hourly_rate, shuttlecocks_used, status,
       created_by, created_at, updated_at
FROM events`

const getEventSQL = selectEventColumns + ` WHERE id = $1`

const listEventsSQL = selectEventColumns + ` ORDER BY event_date, id`

const selectCourtColumns = `
SELECT event_id, court_number, reserved_start, reserved_end, actual_start, actual_end
FROM event_courts`

const getCourtsSQL = selectCourtColumns + ` WHERE event_id = $1 ORDER BY position`

const listCourtsSQL = selectCourtColumns + ` ORDER BY event_id, position`

const deleteCourtsSQL = `DELETE FROM event_courts WHERE event_id = $1`

const insertCourtSQL = `
INSERT INTO event_courts (
  event_id, position, court_number, reserved_start, reserved_end, actual_start, actual_end
) VALUES ($1,$2,$3,$4,$5,$6,$7)
`

const selectPlayerColumns = `
SELECT event_id, id, user_id, name, email, start_minute, end_minute,
       registered_at, seq, status, cancelled_on_event_day, absent, cancel_token
FROM event_players`

const getPlayersSQL = selectPlayerColumns + ` WHERE event_id = $1 ORDER BY seq`

const listPlayersSQL = selectPlayerColumns + ` ORDER BY event_id, seq`

const deletePlayersSQL = `DELETE FROM event_players WHERE event_id = $1`

const insertPlayerSQL = `
INSERT INTO event_players (
  event_id, id, user_id, name, email, start_minute, end_minute,
  registered_at, seq, status, cancelled_on_event_day, absent, cancel_token
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
`
