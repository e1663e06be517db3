package explain

const explainPromptTemplate = `You review changes between two versions of an LLM prompt template.

Old version: {{.OldLabel}}
New version: {{.NewLabel}}
Overall text similarity: {{.Similarity}}

Classified changes:
{{.Changes}}

Write a short review (3-6 sentences) for a prompt engineer. Explain what
changed in behavioral terms: new or removed instructions, renamed or
retired variables, altered examples or role structure. Do not repeat the
raw diff. Call out anything likely to change model output materially.`
