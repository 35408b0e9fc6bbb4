package mcpserver

// JournalingGuide describes how LLM consumers should phrase mood entries
// and interpret the wellness data returned by the tools.
const JournalingGuide = `# MindFlow Journaling Guide

Guidance for assistants logging mood entries and reading wellness data
through the MindFlow tools.

## Logging moods (log_mood)

1. **Write in the user's voice.** The entry content should read as the
   user describing their own state ("I felt scattered all morning"), not
   as a third-person report.
2. **One entry per moment.** Do not batch several days into one entry;
   call the tool once per distinct check-in.
3. **Plain text only.** No Markdown, no headings, no bullet lists.
4. **Sentiment is assigned by the server.** Never include ratings or
   scores in the content; the entry is analyzed after it is stored and
   the returned record carries the sentiment (1-5) and confidence (0-100).

## Reading wellness data

- ` + "`" + `get_weekly_trends` + "`" + ` returns one point per day, oldest first, with
  steps, sleep hours, and a stress figure.
- ` + "`" + `get_focus_stats` + "`" + ` covers only sessions started today (local time).
- ` + "`" + `get_stress_analysis` + "`" + ` scores 0-100 with level low / moderate /
  high / very-high. A score of 35 with a single "insufficient data"
  factor means the analyzer fell back; treat it as "no signal", not as a
  real measurement.

## Focus sessions

- ` + "`" + `start_focus_session` + "`" + ` silently closes any session already running;
  there is never more than one active session.
- ` + "`" + `end_focus_session` + "`" + ` fails when nothing is running. Check with the
  stats or session tools before ending if unsure.
`
