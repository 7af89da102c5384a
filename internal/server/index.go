package server

// indexHTML is the minimal search form served at the root.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Deal Finder</title>
  <style>
    body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
    label { display: block; margin-top: 1rem; }
    input { width: 100%; padding: 0.4rem; }
    button { margin-top: 1.5rem; padding: 0.6rem 1.5rem; }
  </style>
</head>
<body>
  <h1>Investment Deal Finder</h1>
  <form method="post" action="/search">
    <label>Location
      <input name="location" placeholder="Memphis, TN" required>
    </label>
    <label>Max price
      <input name="max_price" type="number" placeholder="150000">
    </label>
    <label>Min beds
      <input name="min_beds" type="number" placeholder="3">
    </label>
    <label>Min baths
      <input name="min_baths" type="number" placeholder="2">
    </label>
    <button type="submit">Find Deals</button>
  </form>
</body>
</html>
`
