/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: templates.go
Description: HTML template for the standalone evaluation report.
*/

package reporting

// reportTemplate renders an Evaluation
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            background: #f5f6fa;
            color: #333;
            margin: 0;
            padding: 20px;
        }

        .header {
            background: #fff;
            border-radius: 12px;
            padding: 20px 30px;
            margin-bottom: 20px;
            box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
        }

        table {
            border-collapse: collapse;
            width: 100%;
            background: #fff;
            box-shadow: 0 4px 16px rgba(0, 0, 0, 0.08);
        }

        th, td {
            border: 1px solid #e2e8f0;
            padding: 6px 10px;
            text-align: left;
        }

        th {
            background: #edf2f7;
        }

        pre {
            white-space: pre-wrap;
            word-break: break-all;
            margin: 0;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Title}}</h1>
        <p>Generated on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM"}} | Session: {{.SessionID}}</p>
        <p>Reference alphabet: <code>{{.RefAlphabet}}</code> | Encoded alphabet: <code>{{.EncAlphabet}}</code>{{if .Partitioning}} | Partitioning: {{.Partitioning}}{{end}}</p>
        <p>Encrypted symbols: {{.EncLength}} | Reference symbols: {{.RefLength}}</p>
        {{if .HasTrueKey}}<p>True key fitness: {{printf "%.6g" .TrueFitness}}</p>{{end}}
    </div>
    <table>
        <tr>
            <th>Strategy</th><th>Fitness</th><th>Score</th>
            {{if .HasTrueKey}}<th>Text accuracy</th><th>Key accuracy</th>{{end}}
            <th>Candidates</th><th>Duration</th><th>Key</th><th>Preview</th>
        </tr>
        {{range .Rows}}
        <tr>
            <td>{{.Strategy}}</td>
            <td>{{printf "%.6g" .Fitness}}</td>
            <td>{{printf "%.6g" .Score}}</td>
            {{if $.HasTrueKey}}<td>{{percent .TextAccuracy}}</td><td>{{percent .KeyAccuracy}}</td>{{end}}
            <td>{{.Candidates}}</td>
            <td>{{.Duration}}</td>
            <td><pre>{{.Key}}</pre></td>
            <td><pre>{{.Preview}}</pre></td>
        </tr>
        {{end}}
    </table>
</body>
</html>
`
