package mysql

// Every column is read as text and validated by the same mapper as the CSV source.
// `review` may be NULL; it maps to an empty string.
const listReviewsSQL = `
SELECT
  CAST(rating AS CHAR),
  COALESCE(review, ''),
  CAST(verified_purchase AS CHAR),
  platform,
  version
FROM reviews
ORDER BY id
`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`
